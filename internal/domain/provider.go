package domain

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/agent"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/conversation"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/task"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/logger"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	ProvideConversationService,
	ProvideTaskService,
	ProvideOrchestrator,
	ProvideToolDispatcher,
)

func ProvideConversationService(repo conversation.ConversationRepository, cfg *config.Config) *conversation.ConversationService {
	return conversation.NewConversationService(
		repo,
		conversation.ApproxTokenEstimator{},
		cfg.MaxHistoryMessages,
		cfg.MaxContextTokens,
	)
}

func ProvideTaskService(repo task.TaskRepository) *task.TaskService {
	return task.NewTaskService(repo, logger.GetLogger())
}

func ProvideOrchestrator(engine agent.CompletionEngine, cfg *config.Config) *agent.Orchestrator {
	return agent.NewOrchestrator(engine, cfg.OpenAIModel, cfg.Temperature, logger.GetLogger())
}

func ProvideToolDispatcher(tasks *task.TaskService) *agent.ToolDispatcher {
	return agent.NewToolDispatcher(tasks, logger.GetLogger())
}
