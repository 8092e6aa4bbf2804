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

type strategyRepository struct {
	db *sqlx.DB
}

// NewStrategyRepository creates a new StrategyRepository implementation
func NewStrategyRepository(db *sqlx.DB) repository.StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) Get(ctx context.Context, id models.StrategyID) (*models.ReviewStrategy, error) {
	log := logger.FromContext(ctx).WithPrefix("strategy_repo")
	log.Debug("getting strategy: %s", id)

	query, args, err := sqlBuilder.Select("id", "interval_rule").
		From("review_strategies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var s models.ReviewStrategy
	if err := r.db.GetContext(ctx, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("strategy not found: %s", id)
			return nil, nil
		}
		log.Error("failed to get strategy: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *strategyRepository) List(ctx context.Context) ([]models.ReviewStrategy, error) {
	log := logger.FromContext(ctx).WithPrefix("strategy_repo")

	query, args, err := sqlBuilder.Select("id", "interval_rule").
		From("review_strategies").
		OrderBy("id").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var out []models.ReviewStrategy
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		log.Error("failed to list strategies: %v", err)
		return nil, err
	}
	log.Debug("found %d strategies", len(out))
	return out, nil
}

func (r *strategyRepository) Save(ctx context.Context, s models.ReviewStrategy) error {
	log := logger.FromContext(ctx).WithPrefix("strategy_repo")
	log.Info("saving strategy %s: %q", s.ID, s.IntervalRule)

	query, args, err := sqlBuilder.Insert("review_strategies").
		Columns("id", "interval_rule").
		Values(s.ID, s.IntervalRule).
		Suffix("ON CONFLICT(id) DO UPDATE SET interval_rule = excluded.interval_rule").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save strategy: %v", err)
		return err
	}
	return nil
}
