package engine_test

import (
	"io"
	"math/rand/v2"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
)

func quiet() engine.Option {
	return engine.WithLogger(logger.New(logger.WithOutput(io.Discard)))
}

func seeded(seed uint64) engine.Option {
	return engine.WithRand(rand.New(rand.NewPCG(seed, seed+1)))
}

func history(prices ...float64) []models.PricePoint {
	points := make([]models.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = models.PricePoint{Month: "M" + string(rune('1'+i)), Price: p, DataQuality: models.QualityHigh}
	}
	return points
}

func testCatalog() *catalog.Catalog {
	return catalog.New(models.CatalogContent{
		Trends: []models.TrendItem{
			{ID: "rice", Name: "Rice", Difficulty: 2, Trend: models.TrendIncreasing, NextPrice: 152, PriceHistory: history(120, 125, 130, 135, 140, 145)},
			{ID: "lpg", Name: "LPG", Difficulty: 2, Trend: models.TrendStable, NextPrice: 1910, PriceHistory: history(1910, 1910, 1910, 1910, 1910, 1910)},
			{ID: "oil", Name: "Oil", Difficulty: 2, Trend: models.TrendDecreasing, NextPrice: 270, PriceHistory: history(300, 295, 290, 285, 280, 276)},
			{ID: "onion", Name: "Onion", Difficulty: 5, Trend: models.TrendVolatile, NextPrice: 130, PriceHistory: history(80, 150, 90, 170, 110, 160)},
		},
		Budgets: []models.BudgetScenario{
			{ID: "small", Title: "Small", MonthlyIncome: 1000, Difficulty: 1, Categories: []models.BudgetCategory{
				{ID: "food", Name: "Food", RecommendedPct: 40, MinPct: 30, MaxPct: 50},
				{ID: "rent", Name: "Rent", RecommendedPct: 60, MinPct: 50, MaxPct: 70},
			}},
			{ID: "large", Title: "Large", MonthlyIncome: 5000, Difficulty: 1, Categories: []models.BudgetCategory{
				{ID: "food", Name: "Food", RecommendedPct: 30, MinPct: 20, MaxPct: 40},
				{ID: "savings", Name: "Savings", RecommendedPct: 20, MinPct: 10, MaxPct: 30},
				{ID: "rent", Name: "Rent", RecommendedPct: 50, MinPct: 40, MaxPct: 60},
			}},
		},
		Shopping: []models.ShoppingChallenge{
			{ID: "weekly", Title: "Weekly", Budget: 1000, Difficulty: 2, Items: []models.ShoppingItem{
				{ID: "rice", Name: "Rice", Price: 200, Priority: models.PriorityEssential, MaxQuantity: 2},
				{ID: "tea", Name: "Tea", Price: 100, Priority: models.PriorityOptional, MaxQuantity: 1},
			}},
			{ID: "festival", Title: "Festival", Budget: 2000, Difficulty: 2, Items: []models.ShoppingItem{
				{ID: "ghee", Name: "Ghee", Price: 900, Priority: models.PriorityImportant, MaxQuantity: 1},
				{ID: "flour", Name: "Flour", Price: 150, Priority: models.PriorityEssential, MaxQuantity: 2},
			}},
			{ID: "solo", Title: "Solo", Budget: 500, Difficulty: 3, Items: []models.ShoppingItem{
				{ID: "salt", Name: "Salt", Price: 60, Priority: models.PriorityEssential, MaxQuantity: 2},
			}},
		},
		Market: []models.MarketItem{
			{ID: "momo", Name: "Momo", Unit: "plate", Difficulty: 1, Current: models.PriceRange{Min: 150, Max: 200}, DataQuality: models.QualityMedium},
			{ID: "milk", Name: "Milk", Unit: "liter", Difficulty: 2, Current: models.PriceRange{Min: 100, Max: 100}, DataQuality: models.QualityHigh},
			{ID: "tea", Name: "Tea", Unit: "cup", Difficulty: 1, Current: models.PriceRange{Min: 25, Max: 40}},
			{ID: "petrol", Name: "Petrol", Unit: "liter", Difficulty: 3, Current: models.PriceRange{Min: 170, Max: 175}},
			{ID: "eggs", Name: "Eggs", Unit: "tray", Difficulty: 3, Current: models.PriceRange{Min: 480, Max: 540}},
		},
	})
}
