package scoring

import (
	"math"

	"github.com/vytor/pricepulse/internal/models"
)

const (
	// RangeBonus rewards an allocation inside the category's policy range.
	RangeBonus = 10

	severeOverspendPenalty = 200
	overspendPenalty       = 100
	balancedBonus          = 50
)

type budgetTier struct {
	maxDiff  float64
	points   int
	feedback string
}

var budgetTiers = []budgetTier{
	{5, 100, "Perfect! 🎯"},
	{15, 80, "Good job! 👍"},
	{30, 60, "Close, but could be better 🤔"},
	{50, 40, "Needs adjustment 📊"},
}

var budgetFloorTier = budgetTier{math.Inf(1), 20, "Significantly off target ❌"}

// CategoryScore grades one allocation against its recommended share.
func CategoryScore(cat models.BudgetCategory, income int, amount float64) (int, string) {
	recommended := cat.RecommendedPct / 100 * float64(income)
	tier := budgetFloorTier
	diff := PercentageError(recommended, amount)
	for _, t := range budgetTiers {
		if diff <= t.maxDiff {
			tier = t
			break
		}
	}
	points := tier.points
	pct := sharePercent(amount, income)
	if pct >= cat.MinPct && pct <= cat.MaxPct {
		points += RangeBonus
	}
	return points, tier.feedback
}

func sharePercent(amount float64, income int) float64 {
	if income == 0 {
		return 0
	}
	return amount / float64(income) * 100
}

// Remaining is income minus everything allocated to the scenario's categories.
func Remaining(s models.BudgetScenario, allocations map[string]float64) float64 {
	total := 0.0
	for _, c := range s.Categories {
		total += allocations[c.ID]
	}
	return float64(s.MonthlyIncome) - total
}

// BudgetFeedback returns the overall message for a total score.
func BudgetFeedback(score int) string {
	switch {
	case score >= 600:
		return "Excellent budgeting! You're a natural! 🌟"
	case score >= 450:
		return "Great job! You have good budgeting skills! 💪"
	case score >= 300:
		return "Not bad! Keep practicing to improve! 📈"
	default:
		return "Keep learning about budgeting! Every expert was once a beginner! 📚"
	}
}

// Budget scores a full allocation of a scenario. Categories missing from
// allocations count as 0; ids that are not categories of s are ignored.
func Budget(s models.BudgetScenario, allocations map[string]float64, remaining float64) models.BudgetResult {
	res := models.BudgetResult{
		ScenarioID:       s.ID,
		ScenarioTitle:    s.Title,
		TotalIncome:      s.MonthlyIncome,
		Allocations:      make([]models.BudgetAllocation, 0, len(s.Categories)),
		Remaining:        remaining,
		CategoryFeedback: make(map[string]string, len(s.Categories)),
	}

	total := 0
	for _, cat := range s.Categories {
		amount := allocations[cat.ID]
		points, feedback := CategoryScore(cat, s.MonthlyIncome, amount)
		total += points
		res.CategoryFeedback[cat.ID] = feedback
		res.TotalAllocated += amount
		res.Allocations = append(res.Allocations, models.BudgetAllocation{
			CategoryID: cat.ID,
			Amount:     amount,
			Percentage: sharePercent(amount, s.MonthlyIncome),
		})
	}

	income := float64(s.MonthlyIncome)
	if remaining < -income*0.1 {
		total -= severeOverspendPenalty
	} else if remaining < 0 {
		total -= overspendPenalty
	}
	if math.Abs(remaining) <= income*0.05 {
		total += balancedBonus
	}
	if total < 0 {
		total = 0
	}

	res.Score = total
	res.Feedback = BudgetFeedback(total)
	return res
}
