package agent

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
)

// Finish reasons surfaced to the turn controller. Provider values pass
// through untouched; FinishReasonError marks a degraded turn.
const (
	FinishReasonStop      = "stop"
	FinishReasonToolCalls = "tool_calls"
	FinishReasonError     = "error"
)

// Failure classifications carried in Result.Error.Type.
const (
	ErrTypeRateLimit          = "RateLimitError"
	ErrTypeAuthentication     = "AuthenticationError"
	ErrTypeConnection         = "ConnectionError"
	ErrTypeServiceUnavailable = "ServiceUnavailable"
	ErrTypeAPI                = "APIError"
	ErrTypeUnexpected         = "UnexpectedError"
)

// CompletionEngine is the model provider seen by the orchestrator.
type CompletionEngine interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// statusCoder is satisfied by provider errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatusCode() int
}

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Error classifies a provider failure for observability. UserMessage is
// safe to show to the end user; Message is for logs.
type Error struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	UserMessage string `json:"user_message"`
}

// Result is the outcome of one completion pass. Provider failures are
// absorbed into a degraded Result rather than returned as errors, so a
// model outage still yields a conversational-shaped reply.
type Result struct {
	Response     string     `json:"response"`
	FinishReason string     `json:"finish_reason"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	Error        *Error     `json:"error,omitempty"`
}

// Orchestrator drives completion passes against the model provider.
type Orchestrator struct {
	engine      CompletionEngine
	model       string
	temperature float32
	log         zerolog.Logger
}

func NewOrchestrator(engine CompletionEngine, model string, temperature float32, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		engine:      engine,
		model:       model,
		temperature: temperature,
		log:         log,
	}
}

// FormatMessages builds the provider message array: system prompt,
// then history in chronological order, then the current user message
// when present.
func (o *Orchestrator) FormatMessages(history []openai.ChatCompletionMessage, currentMessage string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt,
	})
	messages = append(messages, history...)
	if currentMessage != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: currentMessage,
		})
	}
	return messages
}

// ProcessMessage runs one completion pass. Tools are offered only when
// the caller supplies them; the second pass of a turn passes nil to
// force a plain text reply.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message string, history []openai.ChatCompletionMessage, tools []openai.Tool) Result {
	messages := o.FormatMessages(history, message)

	o.log.Info().
		Str("user_id", userID).
		Int("context_messages", len(messages)).
		Bool("tools_offered", len(tools) > 0).
		Msg("processing message")

	request := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
	}
	if len(tools) > 0 {
		request.Tools = tools
		request.ToolChoice = "auto"
	}

	response, err := o.engine.CreateChatCompletion(ctx, request)
	if err != nil {
		return o.failureResult(err)
	}
	if len(response.Choices) == 0 {
		return o.failureResult(errors.New("completion response contained no choices"))
	}

	choice := response.Choices[0]
	result := Result{FinishReason: string(choice.FinishReason)}

	if choice.FinishReason == openai.FinishReasonToolCalls && len(choice.Message.ToolCalls) > 0 {
		result.ToolCalls = functional.Map(choice.Message.ToolCalls, func(tc openai.ToolCall) ToolCall {
			return ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}
		})
	}
	result.Response = choice.Message.Content

	o.log.Info().
		Str("user_id", userID).
		Str("finish_reason", result.FinishReason).
		Int("tool_calls", len(result.ToolCalls)).
		Msg("completion pass finished")

	return result
}

// failureResult converts a provider failure into a degraded success:
// an apology the user can read plus a structured classification.
func (o *Orchestrator) failureResult(err error) Result {
	classified := classifyFailure(err)

	event := o.log.Error()
	if classified.Type == ErrTypeAuthentication {
		// Bad credentials are an operator problem, not a transient one.
		event = o.log.WithLevel(zerolog.FatalLevel)
	}
	event.Err(err).Str("error_type", classified.Type).Msg("completion engine failure")

	return Result{
		Response:     classified.UserResponse,
		FinishReason: FinishReasonError,
		Error: &Error{
			Type:        classified.Type,
			Message:     classified.Message,
			UserMessage: classified.UserMessage,
		},
	}
}

type failureClass struct {
	Type         string
	Message      string
	UserResponse string
	UserMessage  string
}

func classifyFailure(err error) failureClass {
	var coder statusCoder
	if errors.As(err, &coder) {
		switch status := coder.HTTPStatusCode(); {
		case status == 429:
			return failureClass{
				Type:         ErrTypeRateLimit,
				Message:      "completion provider rate limit exceeded",
				UserResponse: "I'm experiencing high demand right now. Please try again in a moment.",
				UserMessage:  "I'm experiencing high demand right now. Please try again in a moment.",
			}
		case status == 401 || status == 403:
			return failureClass{
				Type:         ErrTypeAuthentication,
				Message:      "completion provider rejected credentials",
				UserResponse: "I'm temporarily unavailable due to a configuration issue. Please contact support.",
				UserMessage:  "Service configuration error. Please contact support.",
			}
		case status == 503:
			return failureClass{
				Type:         ErrTypeServiceUnavailable,
				Message:      "completion provider temporarily unavailable",
				UserResponse: "I'm temporarily unavailable. Please try again shortly.",
				UserMessage:  "Service temporarily unavailable. Please try again in a few minutes.",
			}
		default:
			return failureClass{
				Type:         ErrTypeAPI,
				Message:      "completion provider error: " + err.Error(),
				UserResponse: "I encountered an error processing your request. Please try again or rephrase your message.",
				UserMessage:  "An error occurred. Please try again.",
			}
		}
	}

	if isConnectionError(err) {
		return failureClass{
			Type:         ErrTypeConnection,
			Message:      "failed to connect to completion provider",
			UserResponse: "I'm having trouble connecting to my AI services. Please try again in a moment.",
			UserMessage:  "Connection error. Please try again shortly.",
		}
	}

	return failureClass{
		Type:         ErrTypeUnexpected,
		Message:      "unexpected error: " + err.Error(),
		UserResponse: "I encountered an unexpected error. Please try again.",
		UserMessage:  "An unexpected error occurred. Please try again.",
	}
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// TruncateHistory keeps the newest suffix of messages fitting a char
// budget of roughly four characters per token. Used as a final guard
// before a completion pass; the history assembler applies the primary
// token budget upstream.
func (o *Orchestrator) TruncateHistory(messages []openai.ChatCompletionMessage, maxTokens int) []openai.ChatCompletionMessage {
	maxChars := maxTokens * 4
	total := 0
	for _, m := range messages {
		total += len(m.Content)
	}
	if total <= maxChars {
		return messages
	}

	kept := make([]openai.ChatCompletionMessage, 0, len(messages))
	chars := 0
	for i := len(messages) - 1; i >= 0; i-- {
		size := len(messages[i].Content)
		if chars+size > maxChars {
			break
		}
		chars += size
		kept = append(kept, messages[i])
	}

	o.log.Warn().
		Int("before", len(messages)).
		Int("after", len(kept)).
		Msg("truncated history")

	return functional.Reverse(kept)
}
