package handlers

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/handlers/chathandler"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/handlers/conversationhandler"
)

var HandlerProvider = wire.NewSet(
	chathandler.NewChatHandler,
	conversationhandler.NewConversationHandler,
)
