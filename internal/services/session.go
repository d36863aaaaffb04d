package services

import (
	"sync"
	"time"

	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/models"
)

const subscriberBuffer = 8

// roundGame is the common face of the multi-round engines.
type roundGame interface {
	Start() bool
	NextRound() bool
	Reset() bool
	State() any
}

type trendGame struct{ *engine.TrendGame }

func (g trendGame) State() any { return g.TrendGame.State() }

type budgetGame struct{ *engine.BudgetGame }

func (g budgetGame) State() any { return g.BudgetGame.State() }

type shoppingGame struct{ *engine.ShoppingGame }

func (g shoppingGame) State() any { return g.ShoppingGame.State() }

type guessGame struct{ *engine.GuessGame }

func (g guessGame) State() any { return g.GuessGame.State() }

type session struct {
	id        string
	variant   models.Variant
	level     models.MemoryLevel
	createdAt time.Time

	// mu serializes operations on the round engines, which are single-writer.
	mu       sync.Mutex
	lastSeen time.Time
	rounds   roundGame
	memory   *engine.MemoryGame

	subsMu  sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
	closed  bool
}

func (s *session) touch(now time.Time) {
	s.lastSeen = now
}

func (s *session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		Variant:   s.variant,
		CreatedAt: s.createdAt,
		UpdatedAt: s.lastSeen,
	}
	if s.memory != nil {
		snap.State = s.memory.State().Masked()
	} else {
		snap.State = s.rounds.State()
	}
	return snap
}

func (s *session) subscribe(initial Snapshot) (<-chan Snapshot, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	ch := make(chan Snapshot, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- initial
	id := s.nextSub
	s.nextSub++
	if s.subs == nil {
		s.subs = make(map[int]chan Snapshot)
	}
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// publish fans a snapshot out without blocking; slow subscribers miss
// intermediate states.
func (s *session) publish(snap Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *session) close() {
	if s.memory != nil {
		s.memory.Stop()
	}
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
