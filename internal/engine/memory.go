package engine

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

const (
	// FlipDelay is how long two face-up cards stay visible before the
	// pair is resolved.
	FlipDelay = time.Second
	// TickInterval is the countdown step.
	TickInterval = time.Second
)

type MemoryPhase string

const (
	PhaseIdle      MemoryPhase = "idle"
	PhasePlaying   MemoryPhase = "playing"
	PhaseResolving MemoryPhase = "resolving"
	PhaseWon       MemoryPhase = "won"
	PhaseTimeUp    MemoryPhase = "time_up"
)

type memoryLevel struct {
	pairs int
	limit time.Duration
}

var memoryLevels = map[models.MemoryLevel]memoryLevel{
	models.LevelEasy:   {pairs: 4, limit: 120 * time.Second},
	models.LevelMedium: {pairs: 6, limit: 180 * time.Second},
	models.LevelHard:   {pairs: 8, limit: 240 * time.Second},
}

// MemoryBoard returns the pair count and time limit of a level.
func MemoryBoard(level models.MemoryLevel) (pairs int, limit time.Duration, ok bool) {
	l, ok := memoryLevels[level]
	return l.pairs, l.limit, ok
}

// MemoryState is a snapshot of the memory game. TimeLeft and Elapsed are
// whole seconds.
type MemoryState struct {
	Level      models.MemoryLevel  `json:"level"`
	Phase      MemoryPhase         `json:"phase"`
	Cards      []models.MemoryCard `json:"cards"`
	Moves      int                 `json:"moves"`
	Matches    int                 `json:"matches"`
	Pairs      int                 `json:"pairs"`
	TimeLeft   int                 `json:"time_left"`
	Elapsed    int                 `json:"elapsed"`
	Score      int                 `json:"score"`
	IsGameOver bool                `json:"is_game_over"`
}

// Masked hides the content of face-down cards, leaving only their face kind.
func (s MemoryState) Masked() MemoryState {
	s.Cards = slices.Clone(s.Cards)
	for i, c := range s.Cards {
		if c.Flipped || c.Matched {
			continue
		}
		s.Cards[i] = models.MemoryCard{ID: c.ID, Face: c.Face}
	}
	return s
}

// MemoryGame matches item names with their prices against a countdown.
//
// Unlike the round-based engines it is driven by two timers as well as the
// player, so every method locks. Timer callbacks carry the generation they
// were scheduled in and are dropped once the board has been restarted or
// finished.
type MemoryGame struct {
	catalog *catalog.Catalog
	log     *logger.Logger
	picker  *catalog.Picker
	clock   Clock
	notify  func(MemoryState)

	mu         sync.Mutex
	gen        uint64
	level      models.MemoryLevel
	phase      MemoryPhase
	cards      []models.MemoryCard
	pairKeys   []string
	faceUp     []int
	moves      int
	matches    int
	pairs      int
	timeLeft   int
	score      int
	startedAt  time.Time
	finishedAt time.Time
	ticker     Timer
	resolver   Timer
}

func NewMemoryGame(c *catalog.Catalog, opts ...Option) *MemoryGame {
	cfg := newConfig(opts)
	return &MemoryGame{
		catalog: c,
		log:     cfg.log.WithField("variant", models.VariantMemory),
		picker:  newPicker(cfg),
		clock:   cfg.clock,
		notify:  cfg.notify,
		phase:   PhaseIdle,
	}
}

// Start deals a new board for level and starts the countdown.
func (g *MemoryGame) Start(level models.MemoryLevel) bool {
	g.mu.Lock()
	ok := g.startLocked(level)
	st := g.stateLocked()
	g.mu.Unlock()
	if ok {
		g.emit(st)
	}
	return ok
}

func (g *MemoryGame) startLocked(level models.MemoryLevel) bool {
	board, ok := memoryLevels[level]
	if !ok {
		g.log.Warn("unknown memory level %q", level)
		return false
	}
	items := catalog.Shuffle(g.picker, g.catalog.ListMarket(models.AnyDifficulty))
	if len(items) == 0 {
		g.log.Warn("market catalog is empty, cannot deal a memory board")
		return false
	}
	if len(items) > board.pairs {
		items = items[:board.pairs]
	} else if len(items) < board.pairs {
		g.log.Warn("only %d market items for a %d pair board", len(items), board.pairs)
	}

	type dealt struct {
		card models.MemoryCard
		key  string
	}
	deck := make([]dealt, 0, len(items)*2)
	for _, it := range items {
		card := models.MemoryCard{ItemName: it.Name, Price: it.Current.Min, Unit: it.Unit}
		name, price := card, card
		name.Face = models.FaceName
		price.Face = models.FacePrice
		deck = append(deck, dealt{name, it.ID}, dealt{price, it.ID})
	}
	deck = catalog.Shuffle(g.picker, deck)

	g.stopTimersLocked()
	g.gen++
	g.level = level
	g.cards = make([]models.MemoryCard, len(deck))
	g.pairKeys = make([]string, len(deck))
	for i, d := range deck {
		d.card.ID = fmt.Sprintf("card-%d", i+1)
		g.cards[i] = d.card
		g.pairKeys[i] = d.key
	}
	g.faceUp = nil
	g.moves = 0
	g.matches = 0
	g.pairs = len(items)
	g.score = 0
	g.timeLeft = int(board.limit / time.Second)
	g.startedAt = g.clock.Now()
	g.finishedAt = time.Time{}
	g.phase = PhasePlaying
	g.scheduleTickLocked()

	g.log.Debug("memory board dealt: level=%s, pairs=%d", level, g.pairs)
	return true
}

// Reset deals a fresh board at the current level. It is a no-op before the
// first Start.
func (g *MemoryGame) Reset() bool {
	g.mu.Lock()
	ok := g.level != "" && g.startLocked(g.level)
	st := g.stateLocked()
	g.mu.Unlock()
	if ok {
		g.emit(st)
	}
	return ok
}

// Flip turns a face-down card up. The second card of a turn schedules the
// pair's resolution after FlipDelay; flips are ignored until it runs.
func (g *MemoryGame) Flip(cardID string) bool {
	g.mu.Lock()
	ok := g.flipLocked(cardID)
	st := g.stateLocked()
	g.mu.Unlock()
	if ok {
		g.emit(st)
	}
	return ok
}

func (g *MemoryGame) flipLocked(cardID string) bool {
	if g.phase != PhasePlaying {
		return false
	}
	idx := slices.IndexFunc(g.cards, func(c models.MemoryCard) bool { return c.ID == cardID })
	if idx < 0 || g.cards[idx].Flipped || g.cards[idx].Matched {
		return false
	}

	g.cards[idx].Flipped = true
	g.faceUp = append(g.faceUp, idx)
	if len(g.faceUp) == 2 {
		g.phase = PhaseResolving
		gen := g.gen
		g.resolver = g.clock.AfterFunc(FlipDelay, func() { g.resolve(gen) })
	}
	return true
}

func (g *MemoryGame) resolve(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || g.phase != PhaseResolving {
		g.mu.Unlock()
		return
	}

	a, b := g.faceUp[0], g.faceUp[1]
	g.moves++
	if g.pairKeys[a] == g.pairKeys[b] && g.cards[a].Face != g.cards[b].Face {
		g.cards[a].Matched = true
		g.cards[b].Matched = true
		g.matches++
	} else {
		g.cards[a].Flipped = false
		g.cards[b].Flipped = false
	}
	g.faceUp = nil
	g.phase = PhasePlaying

	if g.matches == g.pairs {
		g.finishLocked(PhaseWon)
		g.score = scoring.Memory(g.moves, g.finishedAt.Sub(g.startedAt), g.level)
		g.log.Info("memory board cleared: level=%s, moves=%d, score=%d", g.level, g.moves, g.score)
	}
	st := g.stateLocked()
	g.mu.Unlock()
	g.emit(st)
}

func (g *MemoryGame) scheduleTickLocked() {
	gen := g.gen
	g.ticker = g.clock.AfterFunc(TickInterval, func() { g.tick(gen) })
}

func (g *MemoryGame) tick(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || !g.activeLocked() {
		g.mu.Unlock()
		return
	}
	g.timeLeft--
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.finishLocked(PhaseTimeUp)
		g.log.Info("memory board timed out: level=%s, matches=%d/%d", g.level, g.matches, g.pairs)
	} else {
		g.scheduleTickLocked()
	}
	st := g.stateLocked()
	g.mu.Unlock()
	g.emit(st)
}

// Stop cancels both timers and freezes the board. Pending callbacks are
// dropped.
func (g *MemoryGame) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimersLocked()
	g.gen++
}

func (g *MemoryGame) finishLocked(phase MemoryPhase) {
	g.stopTimersLocked()
	g.gen++
	g.phase = phase
	g.finishedAt = g.clock.Now()
}

func (g *MemoryGame) stopTimersLocked() {
	if g.ticker != nil {
		g.ticker.Stop()
		g.ticker = nil
	}
	if g.resolver != nil {
		g.resolver.Stop()
		g.resolver = nil
	}
}

func (g *MemoryGame) activeLocked() bool {
	return g.phase == PhasePlaying || g.phase == PhaseResolving
}

func (g *MemoryGame) State() MemoryState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *MemoryGame) stateLocked() MemoryState {
	st := MemoryState{
		Level:      g.level,
		Phase:      g.phase,
		Cards:      slices.Clone(g.cards),
		Moves:      g.moves,
		Matches:    g.matches,
		Pairs:      g.pairs,
		TimeLeft:   g.timeLeft,
		Score:      g.score,
		IsGameOver: g.phase == PhaseWon || g.phase == PhaseTimeUp,
	}
	switch {
	case !g.finishedAt.IsZero():
		st.Elapsed = int(g.finishedAt.Sub(g.startedAt) / time.Second)
	case !g.startedAt.IsZero():
		st.Elapsed = int(g.clock.Now().Sub(g.startedAt) / time.Second)
	}
	if st.Cards == nil {
		st.Cards = []models.MemoryCard{}
	}
	return st
}

func (g *MemoryGame) emit(st MemoryState) {
	if g.notify != nil {
		g.notify(st)
	}
}
