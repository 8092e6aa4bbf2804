package worker

import (
	"context"

	"github.com/vytor/wordflow/internal/logger"
)

// BuildSessionJob prepares today's session for one user so the first request
// of the day finds its word lists ready. ModeID 0 selects the default mode.
type BuildSessionJob struct {
	Sessions SessionBuilder
	UserID   int64
	ModeID   int64
}

func (j *BuildSessionJob) Name() string { return "build_session" }

func (j *BuildSessionJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)

	session, err := j.Sessions.GetOrCreateToday(ctx, j.UserID, j.ModeID)
	if err != nil {
		return err
	}
	log.Debug("session %d ready: pre_test=%d, learning=%d", session.ID, len(session.PreTestWordIDs), len(session.LearningWordIDs))
	return nil
}
