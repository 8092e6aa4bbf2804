package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, wordID int64) (*models.WordProgress, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID int64) ([]models.WordProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) SetLongDifficult(ctx context.Context, userID, wordID int64, longDifficult bool) error {
	args := m.Called(ctx, userID, wordID, longDifficult)
	return args.Error(0)
}

func (m *MockProgressRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
