package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
)

// MockModeRepository is a mock implementation of repository.ModeRepository
type MockModeRepository struct {
	mock.Mock
}

func (m *MockModeRepository) Get(ctx context.Context, id int64) (*models.LearningMode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningMode), args.Error(1)
}

func (m *MockModeRepository) List(ctx context.Context) ([]models.LearningMode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningMode), args.Error(1)
}
