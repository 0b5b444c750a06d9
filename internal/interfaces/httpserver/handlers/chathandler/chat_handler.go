package chathandler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/agent"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/metrics"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/observability"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/requests"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/responses"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

// Fallback replies for turns where tool calls ran but the model gave
// no usable closing text.
const (
	fallbackToolSummary = "I've processed your request."
	fallbackToolFailure = "I've completed the task."
)

// ChatHandler drives one conversational turn: resolve the conversation,
// assemble history, run the model with the task tools, execute any tool
// calls, fetch a closing reply, and persist both sides of the exchange.
type ChatHandler struct {
	conversations *conversation.ConversationService
	orchestrator  *agent.Orchestrator
	dispatcher    *agent.ToolDispatcher
	log           zerolog.Logger
}

func NewChatHandler(
	conversations *conversation.ConversationService,
	orchestrator *agent.Orchestrator,
	dispatcher *agent.ToolDispatcher,
	log zerolog.Logger,
) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		orchestrator:  orchestrator,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// ProcessTurn executes the full turn and returns the chat reply.
func (h *ChatHandler) ProcessTurn(ctx context.Context, userID string, req requests.ChatRequest) (*responses.ChatResponse, error) {
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "todo-chatbot", "chat.turn")
	defer span.End()
	observability.AddSpanAttributes(ctx, attribute.Bool("conversation.new", req.ConversationID == nil))

	// Step 1: resolve or create the conversation.
	conv, err := h.conversations.ResolveConversation(ctx, req.ConversationID, userID)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to resolve conversation")
	}
	if req.ConversationID == nil {
		metrics.ConversationsCreatedTotal.Inc()
		h.log.Info().Uint("conversation_id", conv.ID).Str("user_id", userID).Msg("created new conversation")
	}
	observability.AddSpanAttributes(ctx, attribute.Int64("conversation.id", int64(conv.ID)))

	// Step 2: conversation history within the token budget.
	history, err := h.conversations.GetConversationHistory(ctx, conv.ID, userID, 0)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to load conversation history")
	}

	// Steps 3 and 4: first completion pass with the task tools offered.
	tools := agent.AvailableTools()
	result := h.orchestrator.ProcessMessage(ctx, userID, req.Message, history, tools)
	if result.Error != nil {
		metrics.RecordCompletionFailure(result.Error.Type)
		observability.AddSpanAttributes(ctx, attribute.String("completion.error_type", result.Error.Type))
	}

	// Step 5: execute requested tool calls.
	var executions []agent.ToolExecution
	if len(result.ToolCalls) > 0 {
		executions = h.dispatcher.DispatchAll(ctx, userID, result.ToolCalls)
		for _, exec := range executions {
			metrics.RecordToolExecution(exec.Tool, exec.Error == "" && exec.Result != nil && exec.Result.Success)
		}
	}

	// Step 6: closing reply. When tools ran but the model gave no text,
	// run a second pass with the tool results and no tools offered.
	finalResponse := result.Response
	if len(executions) > 0 && finalResponse == "" {
		finalResponse = h.closingReply(ctx, userID, req.Message, history, result, executions)
	}

	// Step 7: persist both sides of the exchange. Storage failures are
	// logged but never abort the turn; the user already has the reply.
	h.storeMessage(ctx, conv.ID, userID, conversation.MessageRoleUser, req.Message)
	h.storeMessage(ctx, conv.ID, userID, conversation.MessageRoleAssistant, finalResponse)

	metrics.RecordTurn(result.FinishReason, time.Since(start).Seconds())

	// Step 8: reply envelope.
	return responses.NewChatResponse(conv.ID, finalResponse, executions), nil
}

// closingReply replays the turn to the model with the tool results
// appended so it can phrase a natural-language summary.
func (h *ChatHandler) closingReply(
	ctx context.Context,
	userID string,
	message string,
	history []openai.ChatCompletionMessage,
	result agent.Result,
	executions []agent.ToolExecution,
) string {
	toolResults, err := json.Marshal(executions)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode tool results")
		return fallbackToolFailure
	}

	toolMessages := make([]openai.ChatCompletionMessage, 0, len(history)+3)
	toolMessages = append(toolMessages, history...)
	toolMessages = append(toolMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	assistantCall := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: functional.Map(result.ToolCalls, func(tc agent.ToolCall) openai.ToolCall {
			return openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			}
		}),
	}
	toolMessages = append(toolMessages, assistantCall)

	toolMessage := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleTool,
		Content: string(toolResults),
	}
	if len(result.ToolCalls) > 0 {
		toolMessage.ToolCallID = result.ToolCalls[0].ID
	}
	toolMessages = append(toolMessages, toolMessage)

	final := h.orchestrator.ProcessMessage(ctx, userID, "", toolMessages, nil)
	if final.Error != nil {
		metrics.RecordCompletionFailure(final.Error.Type)
		h.log.Error().Str("error_type", final.Error.Type).Msg("failed to generate closing reply")
		return fallbackToolFailure
	}
	if final.Response == "" {
		return fallbackToolSummary
	}
	return final.Response
}

func (h *ChatHandler) storeMessage(ctx context.Context, conversationID uint, userID string, role conversation.MessageRole, content string) {
	if content == "" {
		return
	}
	if _, err := h.conversations.StoreMessage(ctx, conversationID, userID, role, content); err != nil {
		h.log.Error().
			Err(err).
			Uint("conversation_id", conversationID).
			Str("role", string(role)).
			Msg("failed to store message")
		return
	}
	metrics.RecordMessageStored(string(role))
}
