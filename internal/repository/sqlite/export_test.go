package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/vytor/wordflow/internal/models"
)

// SaveProgress writes a progress row directly, for seeding repository tests.
func SaveProgress(ctx context.Context, db *sqlx.DB, p models.WordProgress) error {
	query, args, err := progressUpsert(p).ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}
