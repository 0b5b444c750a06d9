package repository

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/task"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/repository/conversationrepo"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/repository/taskrepo"
)

// RepositoryProvider provides all repository implementations
var RepositoryProvider = wire.NewSet(
	conversationrepo.NewConversationRepository,
	wire.Bind(new(conversation.ConversationRepository), new(*conversationrepo.ConversationRepository)),

	taskrepo.NewTaskRepository,
	wire.Bind(new(task.TaskRepository), new(*taskrepo.TaskRepository)),
)
