package responses

import (
	"time"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/agent"
)

// ChatResponse is the reply to one conversational turn.
type ChatResponse struct {
	ConversationID uint                  `json:"conversation_id"`
	Response       string                `json:"response"`
	ToolCalls      []agent.ToolExecution `json:"tool_calls,omitempty"`
	CreatedAt      string                `json:"created_at"`
}

// NewChatResponse builds the turn reply envelope.
func NewChatResponse(conversationID uint, response string, toolCalls []agent.ToolExecution) *ChatResponse {
	return &ChatResponse{
		ConversationID: conversationID,
		Response:       response,
		ToolCalls:      toolCalls,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
}
