package catalog

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/vytor/pricepulse/internal/models"
)

// HistoryLength is the number of monthly points every trend item carries.
const HistoryLength = 6

// Validate checks the authoring rules of every table and returns all
// violations joined, or nil.
func (c *Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, t := range c.content.Trends {
		if !t.Difficulty.Valid() {
			add("trend %s: difficulty %d out of range", t.ID, t.Difficulty)
		}
		if len(t.PriceHistory) != HistoryLength {
			add("trend %s: history has %d points, want %d", t.ID, len(t.PriceHistory), HistoryLength)
		}
		if t.NextPrice <= 0 {
			add("trend %s: next price must be positive", t.ID)
		}
		if !t.Trend.Valid() {
			add("trend %s: unknown trend %q", t.ID, t.Trend)
		}
	}
	for _, id := range duplicates(c.content.Trends, func(t models.TrendItem) string { return t.ID }) {
		add("trend %s: duplicate id", id)
	}

	for _, s := range c.content.Budgets {
		if !s.Difficulty.Valid() {
			add("budget %s: difficulty %d out of range", s.ID, s.Difficulty)
		}
		if s.MonthlyIncome <= 0 {
			add("budget %s: income must be positive", s.ID)
		}
		for _, cat := range s.Categories {
			if cat.MinPct > cat.RecommendedPct || cat.RecommendedPct > cat.MaxPct {
				add("budget %s/%s: want min <= recommended <= max, got %g/%g/%g",
					s.ID, cat.ID, cat.MinPct, cat.RecommendedPct, cat.MaxPct)
			}
		}
		for _, id := range duplicates(s.Categories, func(cat models.BudgetCategory) string { return cat.ID }) {
			add("budget %s/%s: duplicate category id", s.ID, id)
		}
	}
	for _, id := range duplicates(c.content.Budgets, func(s models.BudgetScenario) string { return s.ID }) {
		add("budget %s: duplicate id", id)
	}

	for _, ch := range c.content.Shopping {
		if !ch.Difficulty.Valid() {
			add("shopping %s: difficulty %d out of range", ch.ID, ch.Difficulty)
		}
		if ch.Budget <= 0 {
			add("shopping %s: budget must be positive", ch.ID)
		}
		for _, it := range ch.Items {
			if it.MaxQuantity < 0 {
				add("shopping %s/%s: negative max quantity", ch.ID, it.ID)
			}
			if !it.Priority.Valid() {
				add("shopping %s/%s: unknown priority %q", ch.ID, it.ID, it.Priority)
			}
		}
		for _, id := range duplicates(ch.Items, func(it models.ShoppingItem) string { return it.ID }) {
			add("shopping %s/%s: duplicate item id", ch.ID, id)
		}
	}
	for _, id := range duplicates(c.content.Shopping, func(ch models.ShoppingChallenge) string { return ch.ID }) {
		add("shopping %s: duplicate id", id)
	}

	for _, m := range c.content.Market {
		if !m.Difficulty.Valid() {
			add("market %s: difficulty %d out of range", m.ID, m.Difficulty)
		}
		if m.Current.Min <= 0 || m.Current.Min > m.Current.Max {
			add("market %s: bad current range %g-%g", m.ID, m.Current.Min, m.Current.Max)
		}
		if m.Projected.Min > m.Projected.Max {
			add("market %s: bad projected range %g-%g", m.ID, m.Projected.Min, m.Projected.Max)
		}
	}
	for _, id := range duplicates(c.content.Market, func(m models.MarketItem) string { return m.ID }) {
		add("market %s: duplicate id", id)
	}

	return errors.Join(errs...)
}

func duplicates[T any](items []T, id func(T) string) []string {
	return lo.FindDuplicates(lo.Map(items, func(item T, _ int) string { return id(item) }))
}
