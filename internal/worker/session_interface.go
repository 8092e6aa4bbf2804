package worker

import (
	"context"

	"github.com/vytor/wordflow/internal/models"
)

// SessionBuilder creates a user's session for today.
// Declared here so the worker package does not import services.
type SessionBuilder interface {
	GetOrCreateToday(ctx context.Context, userID, modeID int64) (*models.DailySession, error)
}
