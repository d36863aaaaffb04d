package repository

import (
	"context"

	"github.com/vytor/pricepulse/internal/models"
)

// CatalogRepository handles catalog content access.
// Every list method returns rows in authoring order. AnyDifficulty disables filtering.
type CatalogRepository interface {
	TrendItems(ctx context.Context, difficulty models.Difficulty) ([]models.TrendItem, error)
	BudgetScenarios(ctx context.Context, difficulty models.Difficulty) ([]models.BudgetScenario, error)
	ShoppingChallenges(ctx context.Context, difficulty models.Difficulty) ([]models.ShoppingChallenge, error)
	MarketItems(ctx context.Context, difficulty models.Difficulty) ([]models.MarketItem, error)
	IsEmpty(ctx context.Context) (bool, error)
	Seed(ctx context.Context, content models.CatalogContent) error
}
