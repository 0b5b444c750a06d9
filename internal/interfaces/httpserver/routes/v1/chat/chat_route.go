package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/handlers/chathandler"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/middlewares"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/requests"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/responses"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

type ChatRoute struct {
	handler *chathandler.ChatHandler
}

func NewChatRoute(handler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{handler: handler}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/chat", route.chat)
}

// chat handles one conversational turn for the authenticated user.
func (route *ChatRoute) chat(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "5f1d8a3c-94e7-4b20-8d6f-72c1e5a9b3d4")
		return
	}

	var req requests.ChatRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "Message must be between 1 and 10,000 characters", "8e2c4f71-3a9d-4e58-b60c-15d7a2f8c9e0")
		return
	}

	response, err := route.handler.ProcessTurn(ctx, principal.ID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to process message")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}
