package responses

import (
	"time"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
)

// ConversationResponse is a single conversation summary.
type ConversationResponse struct {
	ID        uint   `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ConversationListResponse is a page of conversations.
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Total         int64                  `json:"total"`
	HasMore       bool                   `json:"has_more"`
}

// MessageResponse is one stored message.
type MessageResponse struct {
	ID        uint   `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// MessageListResponse is a page of messages in chronological order.
type MessageListResponse struct {
	ConversationID uint              `json:"conversation_id"`
	Messages       []MessageResponse `json:"messages"`
	Total          int64             `json:"total"`
	HasMore        bool              `json:"has_more"`
}

// ConversationDeletedResponse confirms a deletion.
type ConversationDeletedResponse struct {
	ID              uint  `json:"id"`
	Deleted         bool  `json:"deleted"`
	MessagesDeleted int64 `json:"messages_deleted"`
}

func NewConversationResponse(conv *conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:        conv.ID,
		CreatedAt: conv.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewConversationListResponse(conversations []*conversation.Conversation, total int64, hasMore bool) *ConversationListResponse {
	return &ConversationListResponse{
		Conversations: functional.Map(conversations, NewConversationResponse),
		Total:         total,
		HasMore:       hasMore,
	}
}

func NewMessageResponse(msg *conversation.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewMessageListResponse(conversationID uint, messages []*conversation.Message, total int64, hasMore bool) *MessageListResponse {
	return &MessageListResponse{
		ConversationID: conversationID,
		Messages:       functional.Map(messages, NewMessageResponse),
		Total:          total,
		HasMore:        hasMore,
	}
}
