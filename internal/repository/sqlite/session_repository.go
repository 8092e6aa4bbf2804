package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
)

var sessionColumns = []string{
	"id", "user_id", "session_date", "mode_id", "status",
	"pre_test_word_ids", "learning_word_ids", "post_test_word_ids",
	"pre_test_progress", "learning_progress", "post_test_progress", "created_at",
}

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context, userID int64, date string) (*models.DailySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: user_id=%d, date=%s", userID, date)

	query, args, err := sqlBuilder.Select(sessionColumns...).
		From("daily_sessions").
		Where(squirrel.Eq{"user_id": userID, "session_date": date}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var s models.DailySession
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: user_id=%d, date=%s", userID, date)
			return nil, nil
		}
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

// Create inserts a session and returns ErrAlreadyExists when the user already has one for that date.
func (r *sessionRepository) Create(ctx context.Context, s models.DailySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: user_id=%d, date=%s, mode_id=%d", s.UserID, s.SessionDate, s.ModeID)

	query, args, err := sqlBuilder.Insert("daily_sessions").
		Columns("user_id", "session_date", "mode_id", "status",
			"pre_test_word_ids", "learning_word_ids", "post_test_word_ids",
			"pre_test_progress", "learning_progress", "post_test_progress").
		Values(s.UserID, s.SessionDate, s.ModeID, s.Status,
			s.PreTestWordIDs, s.LearningWordIDs, s.PostTestWordIDs,
			s.PreTestProgress, s.LearningProgress, s.PostTestProgress).
		Suffix("ON CONFLICT(user_id, session_date) DO NOTHING").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		log.Debug("session already exists: user_id=%d, date=%s", s.UserID, s.SessionDate)
		return 0, repository.ErrAlreadyExists
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get last insert id: %v", err)
		return 0, err
	}
	log.Info("created session %d for user %d on %s", id, s.UserID, s.SessionDate)
	return id, nil
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, userID int64, date string, status models.SessionStatus) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session status: user_id=%d, date=%s, status=%s", userID, date, status)

	return r.update(ctx, sqlBuilder.Update("daily_sessions").
		Set("status", status).
		Where(squirrel.Eq{"user_id": userID, "session_date": date}))
}

func (r *sessionRepository) UpdateProgress(ctx context.Context, userID int64, date string, p models.PhaseProgress) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session progress: user_id=%d, date=%s, progress=%+v", userID, date, p)

	return r.update(ctx, sqlBuilder.Update("daily_sessions").
		SetMap(map[string]any{
			"pre_test_progress":  p.PreTest,
			"learning_progress":  p.Learning,
			"post_test_progress": p.PostTest,
		}).
		Where(squirrel.Eq{"user_id": userID, "session_date": date}))
}

func (r *sessionRepository) update(ctx context.Context, b squirrel.UpdateBuilder) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	query, args, err := b.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update session: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
