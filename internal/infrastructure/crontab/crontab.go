package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/config"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/infrastructure/logger"
	"github.com/codewithurooj/Todo-Ai-Chatbot/internal/utils/platformerrors"
)

const (
	// BucketMaxIdle is how long a user's rate-limit bucket may sit
	// untouched before the pruning job drops it.
	BucketMaxIdle = 2 * time.Hour
)

// BucketPruner is implemented by the rate limiter. PruneStale removes
// buckets idle longer than maxIdle and reports how many were dropped.
type BucketPruner interface {
	PruneStale(maxIdle time.Duration) int
}

type Crontab struct {
	ctab   *crontab.Crontab
	pruner BucketPruner
}

func NewCrontab(pruner BucketPruner) *Crontab {
	return &Crontab{
		ctab:   crontab.New(),
		pruner: pruner,
	}
}

// Run schedules the periodic jobs and blocks until the context ends.
func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// Prune idle rate-limit buckets every 10 minutes so the in-memory
	// map does not grow with every user id ever seen.
	if err := c.ctab.AddJob("*/10 * * * *", func() {
		dropped := c.pruner.PruneStale(BucketMaxIdle)
		if dropped > 0 {
			log.Info().Int("dropped", dropped).Msg("pruned idle rate-limit buckets")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add rate-limit prune job")
	}

	// Reload environment-backed config every minute.
	if err := c.ctab.AddJob("* * * * *", func() {
		if _, err := config.Load(); err != nil {
			log.Error().Err(err).Msg("env reload failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}
