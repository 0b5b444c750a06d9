package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"resty.dev/v3"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/domain/agent"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/completion"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/crontab"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/repository"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/database/transaction"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL, cfg.DBPostgresqlRead1DSN)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideRestyClient provides the shared HTTP client used for outbound calls.
func ProvideRestyClient(cfg *config.Config) *resty.Client {
	return resty.New().SetTimeout(cfg.HTTPTimeout)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Completion provider client
	ProvideRestyClient,
	completion.NewClient,
	wire.Bind(new(agent.CompletionEngine), new(*completion.Client)),

	// Logger
	logger.GetLogger,

	// Crontab for periodic maintenance
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
