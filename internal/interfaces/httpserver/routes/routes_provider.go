package routes

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/handlers"
	v1 "github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1/chat"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1/conversation"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.HandlerProvider,

	// Routes
	v1.NewV1Route,
	chat.NewChatRoute,
	conversation.NewConversationRoute,
)
