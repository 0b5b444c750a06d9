package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1/chat"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1/conversation"
)

type V1Route struct {
	chat         *chat.ChatRoute
	conversation *conversation.ConversationRoute
}

func NewV1Route(
	chat *chat.ChatRoute,
	conversation *conversation.ConversationRoute,
) *V1Route {
	return &V1Route{
		chat,
		conversation,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.chat.RegisterRouter(v1Router)
	v1Route.conversation.RegisterRouter(v1Router)
}

// GetVersion returns the current build version and environment reload timestamp.
func GetVersion(c *gin.Context) {
	envReloadedAt := ""
	if cfg := config.GetGlobal(); cfg != nil {
		envReloadedAt = cfg.EnvReloadedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": envReloadedAt,
	})
}
