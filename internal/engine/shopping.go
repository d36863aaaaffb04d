package engine

import (
	"maps"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

// ShoppingState adds the basket being edited in the current round.
type ShoppingState struct {
	State[models.ShoppingChallenge, models.ShoppingResult]
	Quantities map[string]int `json:"quantities"`
	Spent      float64        `json:"spent"`
}

// ShoppingGame draws a random challenge per round, never the one just
// played. With a single matching challenge the game ends after round 1.
type ShoppingGame struct {
	catalog  *catalog.Catalog
	settings Settings
	log      *logger.Logger
	picker   *catalog.Picker

	progress   progress[models.ShoppingResult]
	challenges []models.ShoppingChallenge
	current    *models.ShoppingChallenge
	quantities map[string]int
}

func NewShoppingGame(c *catalog.Catalog, s Settings, opts ...Option) *ShoppingGame {
	cfg := newConfig(opts)
	s = s.normalized()
	return &ShoppingGame{
		catalog:  c,
		settings: s,
		log:      cfg.log.WithField("variant", models.VariantShopping),
		picker:   newPicker(cfg),
		progress: progress[models.ShoppingResult]{total: s.Rounds},
	}
}

func (g *ShoppingGame) Start() bool {
	challenges := g.catalog.ListShopping(g.settings.Difficulty)
	first, ok := catalog.Pick(g.picker, challenges)
	if !ok {
		g.log.Warn("no shopping challenges for difficulty=%d", g.settings.Difficulty)
		return false
	}
	g.challenges = challenges
	g.load(first)
	g.progress.begin()
	g.log.Debug("shopping game started: rounds=%d, pool=%d, first=%s", g.progress.total, len(challenges), first.ID)
	return true
}

func (g *ShoppingGame) load(c models.ShoppingChallenge) {
	g.current = &c
	g.quantities = make(map[string]int, len(c.Items))
	for _, it := range c.Items {
		g.quantities[it.ID] = 0
	}
}

// SetQuantity edits one item of the basket. The item's max quantity is not
// enforced here.
func (g *ShoppingGame) SetQuantity(itemID string, qty int) bool {
	if g.current == nil || !g.progress.accepting() || qty < 0 {
		return false
	}
	if _, ok := g.quantities[itemID]; !ok {
		return false
	}
	g.quantities[itemID] = qty
	return true
}

func (g *ShoppingGame) Submit() bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	g.progress.record(scoring.Shopping(g.quantities, *g.current))
	return true
}

// SubmitQuantities replaces the basket and submits. Unknown ids are ignored;
// a negative quantity rejects the whole answer.
func (g *ShoppingGame) SubmitQuantities(quantities map[string]int) bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	for _, q := range quantities {
		if q < 0 {
			return false
		}
	}
	for id := range g.quantities {
		g.quantities[id] = quantities[id]
	}
	return g.Submit()
}

func (g *ShoppingGame) NextRound() bool {
	if g.current == nil || g.progress.gameOver {
		return false
	}
	if g.progress.onLastRound() {
		g.progress.finish()
		return true
	}

	others := 0
	for _, c := range g.challenges {
		if c.ID != g.current.ID {
			others++
		}
	}
	if others == 0 {
		g.log.Info("no other shopping challenge to play, ending game after round %d", g.progress.round)
		g.progress.finish()
		return true
	}

	next, _ := catalog.PickExcluding(g.picker, g.challenges, challengeID, g.current.ID)
	g.load(next)
	g.progress.advance()
	return true
}

func (g *ShoppingGame) Reset() bool {
	return g.Start()
}

func (g *ShoppingGame) State() ShoppingState {
	st := ShoppingState{
		State:      snapshot(&g.progress, models.VariantShopping, g.settings, g.current, cloneChallenge, cloneShoppingResult),
		Quantities: maps.Clone(g.quantities),
	}
	if g.current != nil {
		for _, it := range g.current.Items {
			st.Spent += it.Price * float64(g.quantities[it.ID])
		}
	}
	return st
}

func challengeID(c models.ShoppingChallenge) string { return c.ID }
