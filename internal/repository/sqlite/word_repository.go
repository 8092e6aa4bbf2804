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

type wordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sqlx.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	query, args, err := sqlBuilder.Select("id", "text", "translation", "created_at").
		From("words").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var w models.Word
	if err := r.db.GetContext(ctx, &w, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found: %d", id)
			return nil, nil
		}
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: %q", w.Text)

	query, args, err := sqlBuilder.Insert("words").
		Columns("text", "translation").
		Values(w.Text, w.Translation).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("word already exists: %q", w.Text)
			return 0, repository.ErrAlreadyExists
		}
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertBatch inserts new words and refreshes translations of existing ones in one transaction.
func (r *wordRepository) UpsertBatch(ctx context.Context, words []models.Word) (created, updated int, err error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Info("upserting %d words", len(words))

	err = tx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, w := range words {
			var id int64
			err := tx.GetContext(ctx, &id, "SELECT id FROM words WHERE text = ?", w.Text)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := tx.ExecContext(ctx, "INSERT INTO words (text, translation) VALUES (?, ?)", w.Text, w.Translation); err != nil {
					return err
				}
				created++
			case err != nil:
				return err
			default:
				if _, err := tx.ExecContext(ctx, "UPDATE words SET translation = ? WHERE id = ?", w.Translation, id); err != nil {
					return err
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to upsert words: %v", err)
		return 0, 0, err
	}
	log.Info("upserted words: created=%d, updated=%d", created, updated)
	return created, updated, nil
}

// Unseen returns up to limit words the user has no progress row for, in catalogue order.
func (r *wordRepository) Unseen(ctx context.Context, userID int64, limit int) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("getting unseen words: user_id=%d, limit=%d", userID, limit)

	if limit <= 0 {
		return []models.Word{}, nil
	}

	query, args, err := sqlBuilder.Select("w.id", "w.text", "w.translation", "w.created_at").
		From("words w").
		Where("NOT EXISTS (SELECT 1 FROM word_progress p WHERE p.user_id = ? AND p.word_id = w.id)", userID).
		OrderBy("w.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	out := []models.Word{}
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		log.Error("failed to get unseen words: %v", err)
		return nil, err
	}
	log.Debug("found %d unseen words", len(out))
	return out, nil
}

func (r *wordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM words"); err != nil {
		logger.FromContext(ctx).WithPrefix("word_repo").Error("failed to count words: %v", err)
		return 0, err
	}
	return n, nil
}
