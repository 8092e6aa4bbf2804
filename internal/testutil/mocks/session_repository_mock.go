package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, userID int64, date string) (*models.DailySession, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailySession), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session models.DailySession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) UpdateStatus(ctx context.Context, userID int64, date string, status models.SessionStatus) error {
	args := m.Called(ctx, userID, date, status)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateProgress(ctx context.Context, userID int64, date string, progress models.PhaseProgress) error {
	args := m.Called(ctx, userID, date, progress)
	return args.Error(0)
}
