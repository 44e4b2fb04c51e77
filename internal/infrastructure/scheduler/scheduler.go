// Package scheduler triggers reconciliation passes at a fixed interval.
package scheduler

import (
	"context"
	"time"

	"prodcat/internal/domain/reconcile"
	"prodcat/pkg/logger"
)

// Runner is the sync entry point the scheduler drives.
type Runner interface {
	Run(ctx context.Context) (*reconcile.Result, error)
}

// Scheduler invokes the runner immediately on start and then on every tick
// until the context is cancelled. Overlap is prevented by the runner itself
// (concurrent invocations share one in-flight pass).
type Scheduler struct {
	runner   Runner
	interval time.Duration
}

// New creates a scheduler with the given interval.
func New(runner Runner, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info(ctx, "sync scheduler started", "interval", s.interval.String())

	s.trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "sync scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		// Errors are already classified and logged by the sync service;
		// the scheduler keeps ticking and retries on the next interval.
		logger.Warn(ctx, "scheduled sync pass failed", "error", err)
	}
}
