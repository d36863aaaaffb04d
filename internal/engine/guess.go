package engine

import (
	"math"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

type GuessState = State[models.MarketItem, models.GuessResult]

// GuessGame asks for the price of a random market item each round. The
// actual price is drawn from the item's current range when the round starts
// and is only revealed through the round's result.
type GuessGame struct {
	catalog  *catalog.Catalog
	settings Settings
	log      *logger.Logger
	picker   *catalog.Picker

	progress progress[models.GuessResult]
	current  *models.MarketItem
	actual   float64
}

func NewGuessGame(c *catalog.Catalog, s Settings, opts ...Option) *GuessGame {
	cfg := newConfig(opts)
	s = s.normalized()
	return &GuessGame{
		catalog:  c,
		settings: s,
		log:      cfg.log.WithField("variant", models.VariantGuess),
		picker:   newPicker(cfg),
		progress: progress[models.GuessResult]{total: s.Rounds},
	}
}

func (g *GuessGame) Start() bool {
	if !g.draw() {
		g.log.Warn("market catalog is empty")
		return false
	}
	g.progress.begin()
	return true
}

func (g *GuessGame) draw() bool {
	item, ok := catalog.Pick(g.picker, g.catalog.ListMarket(g.settings.Difficulty))
	if !ok {
		return false
	}
	g.current = &item
	g.actual = float64(g.picker.IntBetween(int(math.Ceil(item.Current.Min)), int(math.Floor(item.Current.Max))))
	return true
}

// Submit scores a guess, which must be positive and finite.
func (g *GuessGame) Submit(guess float64) bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	if !(guess > 0) || math.IsInf(guess, 0) {
		return false
	}
	g.progress.record(models.GuessResult{
		ItemID:          g.current.ID,
		ItemName:        g.current.Name,
		ActualPrice:     g.actual,
		GuessedPrice:    guess,
		Difference:      math.Abs(g.actual - guess),
		PercentageError: scoring.PercentageError(g.actual, guess),
		Points:          scoring.PriceGuess(g.actual, guess),
		DataQuality:     g.current.DataQuality,
	})
	return true
}

func (g *GuessGame) NextRound() bool {
	if g.current == nil || g.progress.gameOver {
		return false
	}
	if g.progress.onLastRound() {
		g.progress.finish()
		return true
	}
	if !g.draw() {
		return false
	}
	g.progress.advance()
	return true
}

func (g *GuessGame) Reset() bool {
	return g.Start()
}

func (g *GuessGame) State() GuessState {
	return snapshot(&g.progress, models.VariantGuess, g.settings, g.current, identity[models.MarketItem], identity[models.GuessResult])
}
