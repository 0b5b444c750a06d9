package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

type mockEngine struct {
	response    *openai.ChatCompletionResponse
	err         error
	lastRequest openai.ChatCompletionRequest
	calls       int
}

func (m *mockEngine) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	m.calls++
	m.lastRequest = request
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string       { return fmt.Sprintf("provider returned status %d", e.status) }
func (e *statusError) HTTPStatusCode() int { return e.status }

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func textResponse(content string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				FinishReason: openai.FinishReasonStop,
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
			},
		},
	}
}

func newTestOrchestrator(engine CompletionEngine) *Orchestrator {
	return NewOrchestrator(engine, "gpt-4o-mini", 0.7, zerolog.Nop())
}

func TestFormatMessages(t *testing.T) {
	o := newTestOrchestrator(&mockEngine{})

	history := []openai.ChatCompletionMessage{
		{Role: "user", Content: "add milk"},
		{Role: "assistant", Content: "done"},
	}

	messages := o.FormatMessages(history, "show my tasks")
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != openai.ChatMessageRoleSystem || messages[0].Content != SystemPrompt {
		t.Fatalf("first message must be the system prompt")
	}
	if messages[1].Content != "add milk" || messages[2].Content != "done" {
		t.Fatalf("history out of order")
	}
	if messages[3].Role != openai.ChatMessageRoleUser || messages[3].Content != "show my tasks" {
		t.Fatalf("current message must come last")
	}
}

func TestFormatMessagesEmptyCurrent(t *testing.T) {
	o := newTestOrchestrator(&mockEngine{})

	messages := o.FormatMessages([]openai.ChatCompletionMessage{{Role: "tool", Content: "{}"}}, "")
	if len(messages) != 2 {
		t.Fatalf("empty current message must not be appended, got %d messages", len(messages))
	}
}

func TestProcessMessagePlainResponse(t *testing.T) {
	engine := &mockEngine{response: textResponse("Here are your tasks.")}
	o := newTestOrchestrator(engine)

	result := o.ProcessMessage(context.Background(), "u1", "show my tasks", nil, nil)
	if result.FinishReason != FinishReasonStop {
		t.Fatalf("expected stop, got %q", result.FinishReason)
	}
	if result.Response != "Here are your tasks." {
		t.Fatalf("unexpected response %q", result.Response)
	}
	if result.Error != nil || len(result.ToolCalls) != 0 {
		t.Fatalf("clean turn must not carry error or tool calls: %+v", result)
	}
	if len(engine.lastRequest.Tools) != 0 {
		t.Fatalf("no tools were offered but request carries %d", len(engine.lastRequest.Tools))
	}
}

func TestProcessMessageToolCalls(t *testing.T) {
	engine := &mockEngine{
		response: &openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{
					FinishReason: openai.FinishReasonToolCalls,
					Message: openai.ChatCompletionMessage{
						Role: "assistant",
						ToolCalls: []openai.ToolCall{
							{
								ID:   "call_1",
								Type: openai.ToolTypeFunction,
								Function: openai.FunctionCall{
									Name:      ToolAddTask,
									Arguments: `{"title":"Buy milk"}`,
								},
							},
						},
					},
				},
			},
		},
	}
	o := newTestOrchestrator(engine)

	result := o.ProcessMessage(context.Background(), "u1", "add milk", nil, AvailableTools())
	if result.FinishReason != FinishReasonToolCalls {
		t.Fatalf("expected tool_calls, got %q", result.FinishReason)
	}
	if len(result.ToolCalls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(result.ToolCalls))
	}
	tc := result.ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != ToolAddTask || tc.Arguments != `{"title":"Buy milk"}` {
		t.Fatalf("tool call not extracted: %+v", tc)
	}
	if engine.lastRequest.ToolChoice != "auto" {
		t.Fatalf("expected tool_choice auto, got %v", engine.lastRequest.ToolChoice)
	}
}

func TestProcessMessageFailureClassification(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantType string
	}{
		{"rate limit", &statusError{429}, ErrTypeRateLimit},
		{"bad key", &statusError{401}, ErrTypeAuthentication},
		{"forbidden", &statusError{403}, ErrTypeAuthentication},
		{"unavailable", &statusError{503}, ErrTypeServiceUnavailable},
		{"server error", &statusError{500}, ErrTypeAPI},
		{"network", timeoutError{}, ErrTypeConnection},
		{"deadline", context.DeadlineExceeded, ErrTypeConnection},
		{"unknown", fmt.Errorf("boom"), ErrTypeUnexpected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newTestOrchestrator(&mockEngine{err: tc.err})

			result := o.ProcessMessage(context.Background(), "u1", "hello", nil, nil)
			if result.FinishReason != FinishReasonError {
				t.Fatalf("expected degraded turn, got finish_reason %q", result.FinishReason)
			}
			if result.Error == nil || result.Error.Type != tc.wantType {
				t.Fatalf("expected error type %s, got %+v", tc.wantType, result.Error)
			}
			if result.Response == "" {
				t.Fatalf("degraded turn must carry a user-facing apology")
			}
			if strings.Contains(result.Response, tc.err.Error()) {
				t.Fatalf("provider error leaked into user response: %q", result.Response)
			}
		})
	}
}

func TestProcessMessageEmptyChoices(t *testing.T) {
	o := newTestOrchestrator(&mockEngine{response: &openai.ChatCompletionResponse{}})

	result := o.ProcessMessage(context.Background(), "u1", "hello", nil, nil)
	if result.FinishReason != FinishReasonError || result.Error == nil || result.Error.Type != ErrTypeUnexpected {
		t.Fatalf("expected unexpected-error classification, got %+v", result)
	}
}

func TestTruncateHistory(t *testing.T) {
	o := newTestOrchestrator(&mockEngine{})

	messages := []openai.ChatCompletionMessage{
		{Role: "user", Content: strings.Repeat("a", 40)},
		{Role: "assistant", Content: strings.Repeat("b", 40)},
		{Role: "user", Content: strings.Repeat("c", 40)},
	}

	// 20 token budget = 80 chars, fits exactly the two newest messages.
	got := o.TruncateHistory(messages, 20)
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content[0] != 'b' || got[1].Content[0] != 'c' {
		t.Fatalf("expected newest suffix in order")
	}

	// Everything fits: untouched.
	if got := o.TruncateHistory(messages, 1000); len(got) != 3 {
		t.Fatalf("expected all messages kept, got %d", len(got))
	}
}
