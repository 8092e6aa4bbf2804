package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflow/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied,
// including the seeded learning modes and review strategies.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}
