package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/vytor/pricepulse/internal/models"
)

const (
	allEssentialsBonus  = 200
	overBudgetPenalty   = 300
	maxLeftoverBonus    = 100
	excellentEfficiency = 90
	goodEfficiency      = 70
)

// ItemValue is the weight of an item by priority tier.
func ItemValue(p models.Priority) int {
	switch p {
	case models.PriorityEssential:
		return 100
	case models.PriorityImportant:
		return 70
	case models.PriorityOptional:
		return 30
	}
	return 0
}

// Shopping scores a basket. Going over budget zeroes efficiency outright.
// Negative quantities are treated as 0.
func Shopping(quantities map[string]int, c models.ShoppingChallenge) models.ShoppingResult {
	res := models.ShoppingResult{
		ChallengeID:      c.ID,
		ChallengeTitle:   c.Title,
		Budget:           c.Budget,
		Selections:       make([]models.ShoppingSelection, 0, len(c.Items)),
		Quantities:       make(map[string]int, len(c.Items)),
		MissedEssentials: []string{},
		SmartChoices:     []string{},
	}

	res.MaxPossibleValue = lo.SumBy(c.Items, func(it models.ShoppingItem) int {
		return ItemValue(it.Priority)
	})

	for _, it := range c.Items {
		qty := max(quantities[it.ID], 0)
		res.Quantities[it.ID] = qty
		res.Selections = append(res.Selections, models.ShoppingSelection{
			ItemID:   it.ID,
			Selected: qty > 0,
			Quantity: qty,
		})

		if qty > 0 {
			res.TotalSpent += it.Price * float64(qty)
			res.TotalValue += ItemValue(it.Priority)
			if it.Priority == models.PriorityEssential {
				res.SmartChoices = append(res.SmartChoices, it.Name)
			}
		} else if it.Priority == models.PriorityEssential {
			res.MissedEssentials = append(res.MissedEssentials, it.Name)
		}
	}

	budget := float64(c.Budget)
	res.RemainingBudget = budget - res.TotalSpent
	overBudget := res.TotalSpent > budget

	if !overBudget && res.MaxPossibleValue > 0 {
		res.Efficiency = float64(res.TotalValue) / float64(res.MaxPossibleValue) * 100
	}

	score := int(math.Round(res.Efficiency * 10))
	if len(res.MissedEssentials) == 0 {
		score += allEssentialsBonus
	}
	if overBudget {
		score = max(0, score-overBudgetPenalty)
	}
	if res.RemainingBudget > 0 && budget > 0 {
		score += int(math.Round(math.Min(maxLeftoverBonus, res.RemainingBudget/budget*100)))
	}
	res.Score = max(0, score)
	res.Feedback = shoppingFeedback(res, overBudget)
	return res
}

func shoppingFeedback(res models.ShoppingResult, overBudget bool) string {
	switch {
	case overBudget:
		return fmt.Sprintf("You overspent by %s. Try to be more careful with your budget!", FormatPrice(math.Abs(res.RemainingBudget)))
	case len(res.MissedEssentials) > 0:
		return fmt.Sprintf("You missed some essential items: %s. Essentials are important for basic needs.", strings.Join(res.MissedEssentials, ", "))
	case res.Efficiency >= excellentEfficiency:
		return "Excellent shopping! You got all essentials and made smart choices within budget."
	case res.Efficiency >= goodEfficiency:
		return "Good job! You covered the essentials and saved some money."
	default:
		return "You got the basics covered. Next time try to include more important items."
	}
}
