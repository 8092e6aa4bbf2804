package sqlite

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflow/internal/logger"
	"github.com/vytor/wordflow/internal/models"
	"github.com/vytor/wordflow/internal/repository"
)

type historyRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new HistoryRepository implementation
func NewHistoryRepository(db *sqlx.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

// Record appends e and, when progress is not nil, saves progress in the same
// transaction so an outcome is never stored without its schedule.
func (r *historyRepository) Record(ctx context.Context, e models.TestHistoryEntry, progress *models.WordProgress) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")
	log.Debug("recording outcome: user_id=%d, word_id=%d, phase=%s, level=%d, progress=%t",
		e.UserID, e.WordID, e.Phase, e.TestLevel, progress != nil)

	var id int64
	err := tx(ctx, r.db, func(tx *sqlx.Tx) error {
		query, args, err := sqlBuilder.Insert("test_history").
			Columns("user_id", "word_id", "phase", "test_date", "test_level").
			Values(e.UserID, e.WordID, e.Phase, utc(e.TestDate), e.TestLevel).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}

		if progress == nil {
			return nil
		}
		query, args, err = progressUpsert(*progress).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Error("failed to record outcome: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *historyRepository) selectOrdered(columns ...string) squirrel.SelectBuilder {
	return sqlBuilder.Select(columns...).
		From("test_history").
		OrderBy("test_date ASC", "id ASC")
}

func (r *historyRepository) List(ctx context.Context, userID, wordID int64) ([]models.TestHistoryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	query, args, err := r.selectOrdered("id", "user_id", "word_id", "phase", "test_date", "test_level").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var out []models.TestHistoryEntry
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		log.Error("failed to list history: %v", err)
		return nil, err
	}
	log.Debug("found %d history entries: user_id=%d, word_id=%d", len(out), userID, wordID)
	return out, nil
}

func (r *historyRepository) Levels(ctx context.Context, userID, wordID int64) ([]models.Level, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	query, args, err := r.selectOrdered("test_level").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var levels []models.Level
	if err := r.db.SelectContext(ctx, &levels, query, args...); err != nil {
		log.Error("failed to load history levels: %v", err)
		return nil, err
	}
	return levels, nil
}
