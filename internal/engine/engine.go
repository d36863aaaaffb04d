// Package engine holds the round-robin state machines of every game variant.
//
// Engines are single-writer: callers serialize operations on one instance.
// Degenerate input never fails loudly; an operation that cannot apply
// returns false and leaves the state untouched.
package engine

import (
	"math/rand/v2"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
)

// DefaultRounds is used when Settings.Rounds is not positive.
const DefaultRounds = 5

// Settings are the construction parameters of a multi-round game.
type Settings struct {
	Difficulty models.Difficulty `json:"difficulty"`
	Rounds     int               `json:"rounds"`
}

func (s Settings) normalized() Settings {
	if s.Rounds <= 0 {
		s.Rounds = DefaultRounds
	}
	return s
}

type config struct {
	rng    *rand.Rand
	log    *logger.Logger
	clock  Clock
	notify func(MemoryState)
}

// Option configures an engine.
type Option func(*config)

// WithRand sets the random source used for content selection.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithClock replaces the wall clock driving the memory game's timers.
func WithClock(clock Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithNotify registers a hook receiving every memory game state change,
// including those made by timers.
func WithNotify(fn func(MemoryState)) Option {
	return func(c *config) { c.notify = fn }
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Default().WithPrefix("engine")
	}
	if cfg.clock == nil {
		cfg.clock = SystemClock()
	}
	return cfg
}

// State is the snapshot of a multi-round game. Current is nil until the
// game has started.
type State[C, R any] struct {
	Variant      models.Variant    `json:"variant"`
	Difficulty   models.Difficulty `json:"difficulty"`
	Current      *C                `json:"current"`
	CurrentRound int               `json:"current_round"`
	TotalRounds  int               `json:"total_rounds"`
	Score        int               `json:"score"`
	Results      []R               `json:"results"`
	ShowResult   bool              `json:"show_result"`
	IsGameOver   bool              `json:"is_game_over"`
}

type scored interface {
	RoundScore() int
}

// progress is the round bookkeeping shared by every multi-round variant.
type progress[R scored] struct {
	total      int
	round      int
	score      int
	results    []R
	showResult bool
	gameOver   bool
}

func (p *progress[R]) begin() {
	p.round = 1
	p.score = 0
	p.results = []R{}
	p.showResult = false
	p.gameOver = false
}

// accepting reports whether the current round still waits for an answer.
func (p *progress[R]) accepting() bool {
	return p.round > 0 && !p.showResult && !p.gameOver
}

func (p *progress[R]) record(r R) {
	p.results = append(p.results, r)
	p.score += r.RoundScore()
	p.showResult = true
}

func (p *progress[R]) onLastRound() bool {
	return p.round >= p.total
}

func (p *progress[R]) finish() {
	p.gameOver = true
	p.showResult = false
}

func (p *progress[R]) advance() {
	p.round++
	p.showResult = false
}

func snapshot[C any, R scored](p *progress[R], v models.Variant, s Settings, current *C, cloneC func(C) C, cloneR func(R) R) State[C, R] {
	st := State[C, R]{
		Variant:      v,
		Difficulty:   s.Difficulty,
		CurrentRound: p.round,
		TotalRounds:  p.total,
		Score:        p.score,
		Results:      make([]R, len(p.results)),
		ShowResult:   p.showResult,
		IsGameOver:   p.gameOver,
	}
	if current != nil {
		c := cloneC(*current)
		st.Current = &c
	}
	for i, r := range p.results {
		st.Results[i] = cloneR(r)
	}
	return st
}

func newPicker(cfg config) *catalog.Picker {
	return catalog.NewPicker(cfg.rng)
}

func identity[T any](v T) T { return v }
