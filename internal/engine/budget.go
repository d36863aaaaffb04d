package engine

import (
	"maps"
	"math"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

// BudgetState adds the allocations being edited in the current round.
type BudgetState struct {
	State[models.BudgetScenario, models.BudgetResult]
	Allocations map[string]float64 `json:"allocations"`
	Remaining   float64            `json:"remaining"`
}

// BudgetGame walks the filtered scenarios round-robin in catalog order.
type BudgetGame struct {
	catalog  *catalog.Catalog
	settings Settings
	log      *logger.Logger

	progress    progress[models.BudgetResult]
	scenarios   []models.BudgetScenario
	current     *models.BudgetScenario
	allocations map[string]float64
}

func NewBudgetGame(c *catalog.Catalog, s Settings, opts ...Option) *BudgetGame {
	cfg := newConfig(opts)
	s = s.normalized()
	return &BudgetGame{
		catalog:  c,
		settings: s,
		log:      cfg.log.WithField("variant", models.VariantBudget),
		progress: progress[models.BudgetResult]{total: s.Rounds},
	}
}

func (g *BudgetGame) Start() bool {
	scenarios := g.catalog.ListBudgets(g.settings.Difficulty)
	if len(scenarios) == 0 {
		g.log.Warn("no budget scenarios for difficulty=%d", g.settings.Difficulty)
		return false
	}
	g.scenarios = scenarios
	g.load(&g.scenarios[0])
	g.progress.begin()
	g.log.Debug("budget game started: rounds=%d, pool=%d", g.progress.total, len(scenarios))
	return true
}

func (g *BudgetGame) load(s *models.BudgetScenario) {
	g.current = s
	g.allocations = make(map[string]float64, len(s.Categories))
	for _, c := range s.Categories {
		g.allocations[c.ID] = 0
	}
}

// SetAllocation edits one category of the current round. Unknown categories
// and negative or non-finite amounts are rejected.
func (g *BudgetGame) SetAllocation(categoryID string, amount float64) bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	if _, ok := g.allocations[categoryID]; !ok {
		return false
	}
	if !validAmount(amount) {
		return false
	}
	g.allocations[categoryID] = amount
	return true
}

// Submit scores the allocations entered so far.
func (g *BudgetGame) Submit() bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	remaining := scoring.Remaining(*g.current, g.allocations)
	g.progress.record(scoring.Budget(*g.current, g.allocations, remaining))
	return true
}

// SubmitAllocations replaces the round's allocations with the given ones and
// submits. Missing categories count as 0 and unknown ids are ignored; any
// negative amount rejects the whole answer.
func (g *BudgetGame) SubmitAllocations(allocations map[string]float64) bool {
	if g.current == nil || !g.progress.accepting() {
		return false
	}
	for _, amount := range allocations {
		if !validAmount(amount) {
			return false
		}
	}
	for id := range g.allocations {
		g.allocations[id] = allocations[id]
	}
	return g.Submit()
}

func (g *BudgetGame) NextRound() bool {
	if g.current == nil || g.progress.gameOver {
		return false
	}
	if g.progress.onLastRound() {
		g.progress.finish()
		return true
	}
	g.load(&g.scenarios[g.progress.round%len(g.scenarios)])
	g.progress.advance()
	return true
}

func (g *BudgetGame) Reset() bool {
	return g.Start()
}

func (g *BudgetGame) State() BudgetState {
	st := BudgetState{
		State:       snapshot(&g.progress, models.VariantBudget, g.settings, g.current, cloneScenario, cloneBudgetResult),
		Allocations: maps.Clone(g.allocations),
	}
	if g.current != nil {
		st.Remaining = scoring.Remaining(*g.current, g.allocations)
	}
	return st
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
