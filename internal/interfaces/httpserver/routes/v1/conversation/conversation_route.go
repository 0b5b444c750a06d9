package conversation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/handlers/conversationhandler"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/middlewares"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/requests"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/responses"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.GET("", route.listConversations)
	conversations.GET("/:conversation_id", route.getConversation)
	conversations.GET("/:conversation_id/messages", route.getMessages)
	conversations.DELETE("/:conversation_id", route.deleteConversation)
}

// listConversations returns the authenticated user's conversations.
func (route *ConversationRoute) listConversations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "3296ce86-783b-4c05-9fdb-930d3713024e")
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	response, err := route.handler.ListConversations(ctx, principal.ID, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

// getConversation returns a single conversation owned by the user.
func (route *ConversationRoute) getConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "7c4b0f92-d6e1-4a83-95b7-2f8d3c6e1a50")
		return
	}

	conversationID, ok := conversationIDParam(reqCtx)
	if !ok {
		return
	}

	response, err := route.handler.GetConversation(ctx, principal.ID, conversationID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get conversation")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

// getMessages returns a page of the conversation's messages.
func (route *ConversationRoute) getMessages(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "b81e6d07-2f5a-4c39-8e14-d90c7a3b5f26")
		return
	}

	conversationID, ok := conversationIDParam(reqCtx)
	if !ok {
		return
	}

	pagination, err := requests.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process pagination")
		return
	}

	response, err := route.handler.GetMessages(ctx, principal.ID, conversationID, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list messages")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

// deleteConversation removes a conversation and all of its messages.
func (route *ConversationRoute) deleteConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "e57a9c14-6b3d-4f82-a0e9-38d5c1f7b6a2")
		return
	}

	conversationID, ok := conversationIDParam(reqCtx)
	if !ok {
		return
	}

	response, err := route.handler.DeleteConversation(ctx, principal.ID, conversationID)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete conversation")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func conversationIDParam(reqCtx *gin.Context) (uint, bool) {
	raw := reqCtx.Param("conversation_id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid conversation id", "9d0f3b68-1c7e-4a25-b4d8-6e2f9c5a0b13")
		return 0, false
	}
	return uint(parsed), true
}
