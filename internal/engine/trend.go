package engine

import (
	"math"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

type TrendState = State[models.TrendItem, models.TrendResult]

// TrendGame walks the filtered trend items round-robin in catalog order.
type TrendGame struct {
	catalog  *catalog.Catalog
	settings Settings
	log      *logger.Logger

	progress progress[models.TrendResult]
	items    []models.TrendItem
	current  *models.TrendItem
}

func NewTrendGame(c *catalog.Catalog, s Settings, opts ...Option) *TrendGame {
	cfg := newConfig(opts)
	s = s.normalized()
	return &TrendGame{
		catalog:  c,
		settings: s,
		log:      cfg.log.WithField("variant", models.VariantTrend),
		progress: progress[models.TrendResult]{total: s.Rounds},
	}
}

// Start loads round 1. It is a no-op when no item matches the difficulty.
func (g *TrendGame) Start() bool {
	items := g.catalog.ListTrends(g.settings.Difficulty)
	if len(items) == 0 {
		g.log.Warn("no trend items for difficulty=%d", g.settings.Difficulty)
		return false
	}
	g.items = items
	g.current = &g.items[0]
	g.progress.begin()
	g.log.Debug("trend game started: rounds=%d, pool=%d", g.progress.total, len(items))
	return true
}

// Submit scores a prediction for the current item. The predicted price must
// be positive and finite.
func (g *TrendGame) Submit(p models.TrendPrediction) bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	if !(p.PredictedPrice > 0) || math.IsInf(p.PredictedPrice, 0) {
		return false
	}

	item := g.current
	g.progress.record(models.TrendResult{
		ItemID:          item.ID,
		ItemName:        item.Name,
		ActualPrice:     item.NextPrice,
		PredictedPrice:  p.PredictedPrice,
		Difference:      math.Abs(item.NextPrice - p.PredictedPrice),
		PercentageError: scoring.PercentageError(item.NextPrice, p.PredictedPrice),
		Points:          scoring.Trend(item.NextPrice, p.PredictedPrice, p.Confidence, item.Trend),
		Trend:           item.Trend,
		Confidence:      p.Confidence,
	})
	return true
}

// NextRound moves to the next item, or ends the game after the last round.
func (g *TrendGame) NextRound() bool {
	if g.current == nil || g.progress.gameOver {
		return false
	}
	if g.progress.onLastRound() {
		g.progress.finish()
		return true
	}
	g.current = &g.items[g.progress.round%len(g.items)]
	g.progress.advance()
	return true
}

// Reset starts over with the same settings.
func (g *TrendGame) Reset() bool {
	return g.Start()
}

func (g *TrendGame) State() TrendState {
	return snapshot(&g.progress, models.VariantTrend, g.settings, g.current, cloneTrendItem, identity[models.TrendResult])
}
