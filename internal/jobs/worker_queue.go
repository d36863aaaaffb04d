package jobs

import (
	"context"
	"time"

	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	sweeper worker.SessionSweeper
	now     func() time.Time
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, sweeper worker.SessionSweeper, now func() time.Time) *WorkerQueue {
	if now == nil {
		now = time.Now
	}
	return &WorkerQueue{pool: pool, sweeper: sweeper, now: now}
}

func (q *WorkerQueue) EnqueueSweep() error {
	return q.pool.Submit(&worker.SweepSessionsJob{
		Sweeper: q.sweeper,
		Now:     q.now,
	})
}

// Schedule enqueues a sweep every interval until ctx is done.
func Schedule(ctx context.Context, q JobQueue, interval time.Duration) {
	log := logger.Default().WithPrefix("scheduler")
	log.Info("session sweep scheduled every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopped")
			return
		case <-ticker.C:
			if err := q.EnqueueSweep(); err != nil {
				log.Warn("failed to enqueue sweep: %v", err)
			}
		}
	}
}
