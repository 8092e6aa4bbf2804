package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Record(ctx context.Context, entry models.TestHistoryEntry, progress *models.WordProgress) (int64, error) {
	args := m.Called(ctx, entry, progress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context, userID, wordID int64) ([]models.TestHistoryEntry, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TestHistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) Levels(ctx context.Context, userID, wordID int64) ([]models.Level, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Level), args.Error(1)
}
