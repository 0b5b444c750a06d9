//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
