package conversation

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/functional"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

// DeleteResult reports what a conversation deletion removed.
type DeleteResult struct {
	ConversationID  uint  `json:"conversation_id"`
	MessagesDeleted int64 `json:"messages_deleted"`
}

// ConversationService owns conversation lifecycle and history assembly.
// Every operation is scoped to the authenticated user; a conversation
// belonging to someone else is indistinguishable from a missing one at
// the HTTP boundary.
type ConversationService struct {
	repo             ConversationRepository
	estimator        TokenEstimator
	historyLimit     int
	maxContextTokens int
}

func NewConversationService(repo ConversationRepository, estimator TokenEstimator, historyLimit, maxContextTokens int) *ConversationService {
	if historyLimit < 1 {
		historyLimit = DefaultHistoryLimit
	}
	if estimator == nil {
		estimator = ApproxTokenEstimator{}
	}
	return &ConversationService{
		repo:             repo,
		estimator:        estimator,
		historyLimit:     historyLimit,
		maxContextTokens: maxContextTokens,
	}
}

// CreateConversation starts an empty conversation for the user.
func (s *ConversationService) CreateConversation(ctx context.Context, userID string) (*Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"user id is required", nil, "8f2c1a4e-9d3b-4f6a-b1c7-52e8d90a3f14")
	}

	conv := NewConversation(userID)
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	return conv, nil
}

// GetConversation returns the conversation when it exists and belongs to
// the user. An ownership mismatch surfaces as an unauthorized error so
// the HTTP layer can collapse it into not-found.
func (s *ConversationService) GetConversation(ctx context.Context, conversationID uint, userID string) (*Conversation, error) {
	conv, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find conversation")
	}
	if conv.UserID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized,
			"conversation does not belong to user", nil, "c4a91d37-6e85-4b02-a9f3-1d7bce25e840")
	}
	return conv, nil
}

// ResolveConversation returns the existing conversation when an ID is
// given, or creates a fresh one otherwise.
func (s *ConversationService) ResolveConversation(ctx context.Context, conversationID *uint, userID string) (*Conversation, error) {
	if conversationID == nil {
		return s.CreateConversation(ctx, userID)
	}
	return s.GetConversation(ctx, *conversationID, userID)
}

// ListConversations returns the user's conversations. Sorting defaults
// to most recently updated first.
func (s *ConversationService) ListConversations(ctx context.Context, userID string, pagination *query.Pagination) ([]*Conversation, int64, error) {
	filter := ConversationFilter{UserID: &userID}

	conversations, err := s.repo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversations")
	}

	return conversations, total, nil
}

// StoreMessage validates and persists a single message, bumping the
// conversation's updated_at in the same transaction.
func (s *ConversationService) StoreMessage(ctx context.Context, conversationID uint, userID string, role MessageRole, content string) (*Message, error) {
	// Ownership is settled before the payload is validated, so a foreign
	// conversation never leaks which part of the request was malformed.
	conv, err := s.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	if !IsValidRole(role) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Role must be 'user' or 'assistant'", nil, "2b6f03c8-41da-4e97-8c25-fb9a617d30e5")
	}
	if len(content) == 0 || len(content) > MaxMessageContentLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Message content must be between 1 and 10,000 characters", nil, "75e8a2d1-0c4b-49f6-9a83-6d12e4b7c9f0")
	}

	msg := NewMessage(conv.ID, userID, role, content)
	if err := s.repo.AddMessage(ctx, conv.ID, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to store message")
	}
	return msg, nil
}

// GetConversationHistory assembles the model-facing history: the most
// recent messages in chronological order, trimmed to the token budget
// from the newest end.
func (s *ConversationService) GetConversationHistory(ctx context.Context, conversationID uint, userID string, limit int) ([]openai.ChatCompletionMessage, error) {
	if _, err := s.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = s.historyLimit
	}

	recent, err := s.repo.FindRecentMessages(ctx, conversationID, limit)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation history")
	}

	// Repository returns newest first; the model expects oldest first.
	history := functional.Map(functional.Reverse(recent), func(m *Message) openai.ChatCompletionMessage {
		return openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	})

	return TruncateByTokens(history, s.maxContextTokens, s.estimator), nil
}

// GetConversationMessages returns a page of stored messages in
// chronological order together with the conversation's total count.
func (s *ConversationService) GetConversationMessages(ctx context.Context, conversationID uint, userID string, pagination *query.Pagination) ([]*Message, int64, error) {
	if _, err := s.GetConversation(ctx, conversationID, userID); err != nil {
		return nil, 0, err
	}

	messages, err := s.repo.FindMessages(ctx, conversationID, pagination)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load messages")
	}

	total, err := s.repo.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count messages")
	}

	return messages, total, nil
}

// DeleteConversation removes the conversation and its messages.
func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID uint, userID string) (*DeleteResult, error) {
	conv, err := s.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteWithMessages(ctx, conv.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}

	return &DeleteResult{ConversationID: conv.ID, MessagesDeleted: deleted}, nil
}
