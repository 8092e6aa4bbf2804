package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordflow/internal/models"
)

// MockStrategyRepository is a mock implementation of repository.StrategyRepository
type MockStrategyRepository struct {
	mock.Mock
}

func (m *MockStrategyRepository) Get(ctx context.Context, id models.StrategyID) (*models.ReviewStrategy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStrategy), args.Error(1)
}

func (m *MockStrategyRepository) List(ctx context.Context) ([]models.ReviewStrategy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewStrategy), args.Error(1)
}

func (m *MockStrategyRepository) Save(ctx context.Context, strategy models.ReviewStrategy) error {
	args := m.Called(ctx, strategy)
	return args.Error(0)
}
