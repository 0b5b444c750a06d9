package conversationhandler

import (
	"context"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/query"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/responses"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversationService *conversation.ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationService *conversation.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// ListConversations lists the user's conversations, newest activity first.
func (h *ConversationHandler) ListConversations(
	ctx context.Context,
	userID string,
	pagination *query.Pagination,
) (*responses.ConversationListResponse, error) {
	conversations, total, err := h.conversationService.ListConversations(ctx, userID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}

	hasMore := int64(pagination.OffsetOrZero()+len(conversations)) < total
	return responses.NewConversationListResponse(conversations, total, hasMore), nil
}

// GetConversation retrieves a conversation owned by the user.
func (h *ConversationHandler) GetConversation(
	ctx context.Context,
	userID string,
	conversationID uint,
) (*responses.ConversationResponse, error) {
	conv, err := h.conversationService.GetConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get conversation")
	}

	resp := responses.NewConversationResponse(conv)
	return &resp, nil
}

// GetMessages returns a page of the conversation's messages in
// chronological order.
func (h *ConversationHandler) GetMessages(
	ctx context.Context,
	userID string,
	conversationID uint,
	pagination *query.Pagination,
) (*responses.MessageListResponse, error) {
	messages, total, err := h.conversationService.GetConversationMessages(ctx, conversationID, userID, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list messages")
	}

	hasMore := int64(pagination.OffsetOrZero()+len(messages)) < total
	return responses.NewMessageListResponse(conversationID, messages, total, hasMore), nil
}

// DeleteConversation deletes a conversation and its messages.
func (h *ConversationHandler) DeleteConversation(
	ctx context.Context,
	userID string,
	conversationID uint,
) (*responses.ConversationDeletedResponse, error) {
	result, err := h.conversationService.DeleteConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete conversation")
	}

	return &responses.ConversationDeletedResponse{
		ID:              result.ConversationID,
		Deleted:         true,
		MessagesDeleted: result.MessagesDeleted,
	}, nil
}
