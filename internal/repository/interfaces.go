package repository

import (
	"context"
	"errors"

	"github.com/vytor/wordflow/internal/models"
)

// Getters in this package return (nil, nil) when the row does not exist.

// ProgressRepository handles word progress data access
type ProgressRepository interface {
	Get(ctx context.Context, userID, wordID int64) (*models.WordProgress, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WordProgress, error)
	SetLongDifficult(ctx context.Context, userID, wordID int64, longDifficult bool) error
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// StrategyRepository handles review strategy data access
type StrategyRepository interface {
	Get(ctx context.Context, id models.StrategyID) (*models.ReviewStrategy, error)
	List(ctx context.Context) ([]models.ReviewStrategy, error)
	Save(ctx context.Context, strategy models.ReviewStrategy) error
}

// HistoryRepository handles the append-only test history
type HistoryRepository interface {
	// Record appends entry and saves progress (if not nil) atomically.
	Record(ctx context.Context, entry models.TestHistoryEntry, progress *models.WordProgress) (int64, error)
	List(ctx context.Context, userID, wordID int64) ([]models.TestHistoryEntry, error)
	Levels(ctx context.Context, userID, wordID int64) ([]models.Level, error)
}

// SessionRepository handles daily session data access
type SessionRepository interface {
	Get(ctx context.Context, userID int64, date string) (*models.DailySession, error)
	Create(ctx context.Context, session models.DailySession) (int64, error)
	UpdateStatus(ctx context.Context, userID int64, date string, status models.SessionStatus) error
	UpdateProgress(ctx context.Context, userID int64, date string, progress models.PhaseProgress) error
}

// WordRepository handles the vocabulary catalogue
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	UpsertBatch(ctx context.Context, words []models.Word) (created, updated int, err error)
	Unseen(ctx context.Context, userID int64, limit int) ([]models.Word, error)
	Count(ctx context.Context) (int, error)
}

// ModeRepository handles learning mode lookups
type ModeRepository interface {
	Get(ctx context.Context, id int64) (*models.LearningMode, error)
	List(ctx context.Context) ([]models.LearningMode, error)
}

// Sentinel errors returned by write operations.
var (
	ErrNotFound      = errors.New("repository: not found")
	ErrAlreadyExists = errors.New("repository: already exists")
)
