package jobs

import "context"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueSessionBuild(ctx context.Context, userID int64) error
}
