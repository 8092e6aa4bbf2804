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

type modeRepository struct {
	db *sqlx.DB
}

// NewModeRepository creates a new ModeRepository implementation
func NewModeRepository(db *sqlx.DB) repository.ModeRepository {
	return &modeRepository{db: db}
}

func (r *modeRepository) Get(ctx context.Context, id int64) (*models.LearningMode, error) {
	log := logger.FromContext(ctx).WithPrefix("mode_repo")

	query, args, err := sqlBuilder.Select("id", "name", "word_count").
		From("learning_modes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var m models.LearningMode
	if err := r.db.GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("mode not found: %d", id)
			return nil, nil
		}
		log.Error("failed to get mode: %v", err)
		return nil, err
	}
	return &m, nil
}

func (r *modeRepository) List(ctx context.Context) ([]models.LearningMode, error) {
	log := logger.FromContext(ctx).WithPrefix("mode_repo")

	var out []models.LearningMode
	if err := r.db.SelectContext(ctx, &out, "SELECT id, name, word_count FROM learning_modes ORDER BY id"); err != nil {
		log.Error("failed to list modes: %v", err)
		return nil, err
	}
	return out, nil
}
