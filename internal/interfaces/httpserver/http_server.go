package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure"
	middleware "github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/middlewares"
	v1 "github.com/codewithurooj/Todo-Ai-Chatbot/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	v1Route     *v1.V1Route
	rateLimiter *middleware.RateLimiter
	config      *config.Config
	httpServer  *http.Server
}

func NewHttpServer(
	v1Route *v1.V1Route,
	rateLimiter *middleware.RateLimiter,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		engine:      gin.New(),
		infra:       infra,
		v1Route:     v1Route,
		rateLimiter: rateLimiter,
		config:      cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	// Health endpoints for orchestrators and probes
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

// Run registers the protected routes and serves until the context ends.
func (httpServer *HTTPServer) Run(ctx context.Context) error {
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.config, httpServer.infra.Logger),
		httpServer.rateLimiter.Middleware(),
	)

	httpServer.v1Route.RegisterRouter(protected)

	httpServer.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", httpServer.config.HTTPPort),
		Handler: httpServer.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpServer.config.HTTPTimeout)
		defer cancel()
		return httpServer.httpServer.Shutdown(shutdownCtx)
	}
}

// Engine exposes the router for tests.
func (httpServer *HTTPServer) Engine() *gin.Engine {
	return httpServer.engine
}
