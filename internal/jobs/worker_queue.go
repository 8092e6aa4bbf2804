package jobs

import (
	"context"

	"github.com/vytor/wordflow/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	sessionPool *worker.Pool
	sessions    worker.SessionBuilder
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(sessionPool *worker.Pool, sessions worker.SessionBuilder) JobQueue {
	return &WorkerQueue{
		sessionPool: sessionPool,
		sessions:    sessions,
	}
}

func (q *WorkerQueue) EnqueueSessionBuild(ctx context.Context, userID int64) error {
	return q.sessionPool.Submit(ctx, &worker.BuildSessionJob{
		Sessions: q.sessions,
		UserID:   userID,
	})
}
