package interfaces

import (
	"github.com/google/wire"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/crontab"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/middlewares"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes"
)

// ProvideRateLimiter builds the per-user request limiter from config.
func ProvideRateLimiter(cfg *config.Config) *middlewares.RateLimiter {
	return middlewares.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitPerHour)
}

var InterfacesProvider = wire.NewSet(
	ProvideRateLimiter,
	wire.Bind(new(crontab.BucketPruner), new(*middlewares.RateLimiter)),
	routes.RouteProvider,
	httpserver.NewHttpServer,
)
