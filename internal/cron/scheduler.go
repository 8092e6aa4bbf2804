// Package cron runs the nightly pre-build of daily sessions.
package cron

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/wordflow/internal/jobs"
	"github.com/vytor/wordflow/internal/logger"
)

// UserLister returns every user that has learning activity.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// Scheduler enqueues a session build for each active user once a day.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserLister
	queue     jobs.JobQueue
	log       *logger.Logger
}

// New creates a scheduler firing daily at the "HH:MM" time at in loc.
func New(loc *time.Location, at string, users UserLister, queue jobs.JobQueue) (*Scheduler, error) {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		users:     users,
		queue:     queue,
		log:       logger.Default().WithPrefix("cron"),
	}
	s.scheduler.SingletonModeAll()
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.buildSessions); err != nil {
		return nil, err
	}
	s.log.Info("session pre-build scheduled daily at %s %s", at, loc)
	return s, nil
}

// Start begins running the scheduled task without blocking.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) buildSessions() {
	ctx := logger.NewContext(context.Background(), s.log)
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("session pre-build failed: %v", err)
	}
}

// RunOnce enqueues a session build for every active user and returns how many
// were enqueued. A failed enqueue is logged and the remaining users are still tried.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	users, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	log.Info("pre-building sessions for %d users", len(users))

	enqueued := 0
	for _, userID := range users {
		if err := s.queue.EnqueueSessionBuild(ctx, userID); err != nil {
			log.Warn("failed to enqueue session build for user %d: %v", userID, err)
			continue
		}
		enqueued++
	}
	return enqueued, nil
}
