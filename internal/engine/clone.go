package engine

import (
	"maps"
	"slices"

	"github.com/vytor/pricepulse/internal/models"
)

func cloneTrendItem(t models.TrendItem) models.TrendItem {
	t.PriceHistory = slices.Clone(t.PriceHistory)
	return t
}

func cloneScenario(s models.BudgetScenario) models.BudgetScenario {
	s.Categories = slices.Clone(s.Categories)
	return s
}

func cloneChallenge(c models.ShoppingChallenge) models.ShoppingChallenge {
	c.Items = slices.Clone(c.Items)
	return c
}

func cloneBudgetResult(r models.BudgetResult) models.BudgetResult {
	r.Allocations = slices.Clone(r.Allocations)
	r.CategoryFeedback = maps.Clone(r.CategoryFeedback)
	return r
}

func cloneShoppingResult(r models.ShoppingResult) models.ShoppingResult {
	r.Selections = slices.Clone(r.Selections)
	r.Quantities = maps.Clone(r.Quantities)
	r.MissedEssentials = slices.Clone(r.MissedEssentials)
	r.SmartChoices = slices.Clone(r.SmartChoices)
	return r
}
