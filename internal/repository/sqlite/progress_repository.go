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

var progressColumns = []string{
	"user_id", "word_id", "proficiency_level", "is_long_difficult", "strategy_id",
	"start_date", "last_review_date", "reviewed_times", "next_review_date",
}

type progressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, wordID int64) (*models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, word_id=%d", userID, wordID)

	query, args, err := sqlBuilder.Select(progressColumns...).
		From("word_progress").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var p models.WordProgress
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress not found: user_id=%d, word_id=%d", userID, wordID)
			return nil, nil
		}
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing progress: user_id=%d", userID)

	query, args, err := sqlBuilder.Select(progressColumns...).
		From("word_progress").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("word_id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var rows []models.WordProgress
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, err
	}
	log.Debug("found %d progress rows", len(rows))
	return rows, nil
}

// progressUpsert writes every scheduling column of p, inserting the row if needed.
func progressUpsert(p models.WordProgress) squirrel.InsertBuilder {
	return sqlBuilder.Insert("word_progress").
		Columns(progressColumns...).
		Values(p.UserID, p.WordID, p.ProficiencyLevel, p.IsLongDifficult, p.StrategyID,
			utcPtr(p.StartDate), utcPtr(p.LastReviewDate), p.ReviewedTimes, utcPtr(p.NextReviewDate)).
		Suffix(`ON CONFLICT(user_id, word_id) DO UPDATE SET
    proficiency_level = excluded.proficiency_level,
    is_long_difficult = excluded.is_long_difficult,
    strategy_id = excluded.strategy_id,
    start_date = excluded.start_date,
    last_review_date = excluded.last_review_date,
    reviewed_times = excluded.reviewed_times,
    next_review_date = excluded.next_review_date,
    updated_at = CURRENT_TIMESTAMP`)
}

func (r *progressRepository) SetLongDifficult(ctx context.Context, userID, wordID int64, longDifficult bool) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("setting long-difficult: user_id=%d, word_id=%d, value=%t", userID, wordID, longDifficult)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO word_progress (user_id, word_id, is_long_difficult, strategy_id)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, word_id) DO UPDATE SET
    is_long_difficult = excluded.is_long_difficult,
    updated_at = CURRENT_TIMESTAMP
`, userID, wordID, longDifficult, models.StrategyNormal)
	if err != nil {
		log.Error("failed to set long-difficult flag: %v", err)
	}
	return err
}

func (r *progressRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing active user ids")

	var ids []int64
	err := r.db.SelectContext(ctx, &ids, `
SELECT user_id FROM word_progress
UNION
SELECT user_id FROM daily_sessions
ORDER BY user_id
`)
	if err != nil {
		log.Error("failed to list user ids: %v", err)
		return nil, err
	}
	log.Debug("found %d users", len(ids))
	return ids, nil
}
