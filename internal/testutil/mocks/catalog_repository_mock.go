package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/pricepulse/internal/models"
)

// MockCatalogRepository is a mock implementation of repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) TrendItems(ctx context.Context, difficulty models.Difficulty) ([]models.TrendItem, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrendItem), args.Error(1)
}

func (m *MockCatalogRepository) BudgetScenarios(ctx context.Context, difficulty models.Difficulty) ([]models.BudgetScenario, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BudgetScenario), args.Error(1)
}

func (m *MockCatalogRepository) ShoppingChallenges(ctx context.Context, difficulty models.Difficulty) ([]models.ShoppingChallenge, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShoppingChallenge), args.Error(1)
}

func (m *MockCatalogRepository) MarketItems(ctx context.Context, difficulty models.Difficulty) ([]models.MarketItem, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MarketItem), args.Error(1)
}

func (m *MockCatalogRepository) IsEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) Seed(ctx context.Context, content models.CatalogContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}
