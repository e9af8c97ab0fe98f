package scheduler

import (
	"context"
	"time"

	authrepo "salescrm_backend/internal/auth/repository"
	"salescrm_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultTokenCleanupInterval = time.Hour
	defaultTokenGracePeriod     = 24 * time.Hour
)

// TokenCleanup periodically removes expired and consumed user tokens.
type TokenCleanup struct {
	repo     *authrepo.Repository
	log      *logger.Logger
	interval time.Duration
	grace    time.Duration
}

func NewTokenCleanup(pool *pgxpool.Pool, log *logger.Logger, interval, grace time.Duration) *TokenCleanup {
	if interval <= 0 {
		interval = defaultTokenCleanupInterval
	}
	if grace <= 0 {
		grace = defaultTokenGracePeriod
	}

	return &TokenCleanup{
		repo:     authrepo.New(pool),
		log:      log,
		interval: interval,
		grace:    grace,
	}
}

func (c *TokenCleanup) Run(ctx context.Context) {
	if c == nil || c.repo == nil {
		return
	}

	c.cleanup(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *TokenCleanup) cleanup(ctx context.Context) {
	deleted, err := c.repo.DeleteExpiredTokens(ctx, time.Now().Add(-c.grace))
	if err != nil {
		c.log.Warn("token cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		c.log.Info("token cleanup deleted expired tokens", "deleted", deleted)
	}
}
