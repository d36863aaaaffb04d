package worker

import (
	"context"
	"time"

	"github.com/vytor/pricepulse/internal/logger"
)

// SessionSweeper drops game sessions idle since before a cutoff.
type SessionSweeper interface {
	Sweep(ctx context.Context, now time.Time) int
}

// SweepSessionsJob expires idle game sessions.
type SweepSessionsJob struct {
	Sweeper SessionSweeper
	Now     func() time.Time
}

func (j *SweepSessionsJob) Name() string { return "sweep_sessions" }

func (j *SweepSessionsJob) Run(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	removed := j.Sweeper.Sweep(ctx, now())
	if removed > 0 {
		logger.FromContext(ctx).Info("expired %d idle sessions", removed)
	}
	return nil
}
