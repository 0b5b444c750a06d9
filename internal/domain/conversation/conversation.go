package conversation

import (
	"context"
	"time"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
)

// ===============================================
// Conversation Types
// ===============================================

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

const (
	// MaxMessageContentLength bounds a single stored message body.
	MaxMessageContentLength = 10000

	// DefaultHistoryLimit is how many recent messages feed the model
	// when the caller does not override it.
	DefaultHistoryLimit = 20

	// DefaultListLimit caps conversation listings without an explicit limit.
	DefaultListLimit = 50
)

type Conversation struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID             uint        `json:"id"`
	ConversationID uint        `json:"conversation_id"`
	UserID         string      `json:"user_id"`
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ===============================================
// Conversation Repository
// ===============================================

type ConversationFilter struct {
	UserID *string
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	FindByFilter(ctx context.Context, filter ConversationFilter, pagination *query.Pagination) ([]*Conversation, error)
	Count(ctx context.Context, filter ConversationFilter) (int64, error)

	// DeleteWithMessages removes the conversation and every message in it
	// atomically, returning the number of messages deleted.
	DeleteWithMessages(ctx context.Context, id uint) (int64, error)

	// AddMessage stores the message and bumps the conversation's
	// updated_at in the same transaction.
	AddMessage(ctx context.Context, conversationID uint, message *Message) error

	// FindRecentMessages returns up to limit messages ordered newest first.
	FindRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*Message, error)

	// FindMessages returns messages in chronological order.
	FindMessages(ctx context.Context, conversationID uint, pagination *query.Pagination) ([]*Message, error)
	CountMessages(ctx context.Context, conversationID uint) (int64, error)
}

// ===============================================
// Factory Functions
// ===============================================

// NewConversation creates a conversation owned by the given user.
func NewConversation(userID string) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewMessage creates a message bound to a conversation. Content is stored
// verbatim; validation happens in the service before this is called.
func NewMessage(conversationID uint, userID string, role MessageRole, content string) *Message {
	return &Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
}

// IsValidRole reports whether role is one of the storable message roles.
func IsValidRole(role MessageRole) bool {
	return role == MessageRoleUser || role == MessageRoleAssistant
}
