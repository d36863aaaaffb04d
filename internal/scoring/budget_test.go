package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

func testScenario() models.BudgetScenario {
	return models.BudgetScenario{
		ID:            "test",
		Title:         "Test Household",
		MonthlyIncome: 10000,
		Difficulty:    2,
		Categories: []models.BudgetCategory{
			{ID: "housing", Name: "Housing", RecommendedPct: 50, MinPct: 40, MaxPct: 60},
			{ID: "food", Name: "Food", RecommendedPct: 30, MinPct: 20, MaxPct: 40},
			{ID: "transport", Name: "Transport", RecommendedPct: 20, MinPct: 10, MaxPct: 30},
		},
	}
}

func TestBudget_ExactRecommendation(t *testing.T) {
	s := testScenario()
	alloc := map[string]float64{"housing": 5000, "food": 3000, "transport": 2000}

	res := scoring.Budget(s, alloc, scoring.Remaining(s, alloc))

	assert.Equal(t, 110*len(s.Categories)+50, res.Score)
	assert.Equal(t, 10000.0, res.TotalAllocated)
	assert.Equal(t, 0.0, res.Remaining)
	for _, c := range s.Categories {
		assert.Equal(t, "Perfect! 🎯", res.CategoryFeedback[c.ID])
	}
	require.Len(t, res.Allocations, 3)
	assert.Equal(t, "housing", res.Allocations[0].CategoryID)
	assert.InDelta(t, 50.0, res.Allocations[0].Percentage, 1e-9)
	assert.Equal(t, scoring.BudgetFeedback(380), res.Feedback)
}

func TestBudget_SlightOverspend(t *testing.T) {
	s := testScenario()
	alloc := map[string]float64{"housing": 5000, "food": 3000, "transport": 2250}

	res := scoring.Budget(s, alloc, scoring.Remaining(s, alloc))

	// 110 + 110 + 90, -100 for overspending, +50 for staying within 5%
	assert.Equal(t, 260, res.Score)
	assert.Equal(t, -250.0, res.Remaining)
	assert.Equal(t, "Good job! 👍", res.CategoryFeedback["transport"])
}

func TestBudget_SevereOverspend(t *testing.T) {
	s := testScenario()
	alloc := map[string]float64{"housing": 6000, "food": 3300, "transport": 2200}

	res := scoring.Budget(s, alloc, scoring.Remaining(s, alloc))

	// 70 + 90 + 90 - 200
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, "Close, but could be better 🤔", res.CategoryFeedback["housing"])
}

func TestBudget_UnmappedCategoriesCountAsZero(t *testing.T) {
	s := testScenario()

	res := scoring.Budget(s, map[string]float64{"unknown": 500}, scoring.Remaining(s, nil))

	assert.Equal(t, 60, res.Score)
	assert.Equal(t, 0.0, res.TotalAllocated)
	for _, c := range s.Categories {
		assert.Equal(t, "Significantly off target ❌", res.CategoryFeedback[c.ID])
	}
}

func TestBudget_ClampedAtZero(t *testing.T) {
	s := models.BudgetScenario{
		MonthlyIncome: 1000,
		Categories:    []models.BudgetCategory{{ID: "a", RecommendedPct: 15, MinPct: 10, MaxPct: 20}},
	}
	alloc := map[string]float64{"a": 5000}

	res := scoring.Budget(s, alloc, scoring.Remaining(s, alloc))

	assert.Equal(t, 0, res.Score)
}

func TestBudget_ZeroRecommendedShare(t *testing.T) {
	cat := models.BudgetCategory{ID: "savings", RecommendedPct: 0, MinPct: 0, MaxPct: 5}

	points, feedback := scoring.CategoryScore(cat, 1000, 0)
	assert.Equal(t, 110, points)
	assert.Equal(t, "Perfect! 🎯", feedback)

	points, _ = scoring.CategoryScore(cat, 1000, 40)
	assert.Equal(t, 30, points)
}

func TestBudgetFeedback_Tiers(t *testing.T) {
	assert.Contains(t, scoring.BudgetFeedback(600), "Excellent")
	assert.Contains(t, scoring.BudgetFeedback(599), "Great job")
	assert.Contains(t, scoring.BudgetFeedback(450), "Great job")
	assert.Contains(t, scoring.BudgetFeedback(300), "Not bad")
	assert.Contains(t, scoring.BudgetFeedback(299), "Keep learning")
}
