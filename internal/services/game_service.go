package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/engine"
	"github.com/vytor/pricepulse/internal/errors"
	"github.com/vytor/pricepulse/internal/logger"
	"github.com/vytor/pricepulse/internal/models"
)

// CreateRequest describes a new game session. Level only applies to the
// memory game and defaults to easy.
type CreateRequest struct {
	Variant    models.Variant     `json:"variant"`
	Difficulty models.Difficulty  `json:"difficulty"`
	Rounds     int                `json:"rounds"`
	Level      models.MemoryLevel `json:"level,omitempty"`
}

// Answer carries the player's answer for the current round. Only the fields
// of the session's variant are read: trend uses PredictedPrice, Confidence
// and Reasoning; budget uses Allocations; shopping uses Quantities; guess
// uses Guess.
type Answer struct {
	PredictedPrice float64            `json:"predicted_price,omitempty"`
	Confidence     models.Confidence  `json:"confidence,omitempty"`
	Reasoning      string             `json:"reasoning,omitempty"`
	Allocations    map[string]float64 `json:"allocations,omitempty"`
	Quantities     map[string]int     `json:"quantities,omitempty"`
	Guess          float64            `json:"guess,omitempty"`
}

// Snapshot is the externally visible state of a session. State holds the
// variant's engine state; memory boards are masked.
type Snapshot struct {
	ID        string         `json:"id"`
	Variant   models.Variant `json:"variant"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	State     any            `json:"state"`
}

// GameService handles game session business logic
type GameService interface {
	Create(ctx context.Context, req CreateRequest) (*Snapshot, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Start(ctx context.Context, id string) (*Snapshot, error)
	Submit(ctx context.Context, id string, answer Answer) (*Snapshot, error)
	Next(ctx context.Context, id string) (*Snapshot, error)
	Reset(ctx context.Context, id string) (*Snapshot, error)
	Flip(ctx context.Context, id string, cardID string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error)
	Sweep(ctx context.Context, now time.Time) int
	Catalog() *catalog.Catalog
}

// GameServiceConfig bounds the session registry.
type GameServiceConfig struct {
	DefaultRounds int
	MaxRounds     int
	MaxSessions   int
	SessionTTL    time.Duration
}

// GameServiceOption customizes a GameService.
type GameServiceOption func(*gameService)

// WithClock sets the time source used for session bookkeeping.
func WithClock(now func() time.Time) GameServiceOption {
	return func(s *gameService) { s.now = now }
}

// WithEngineOptions supplies extra options for every engine the service
// builds. fn is called once per session.
func WithEngineOptions(fn func() []engine.Option) GameServiceOption {
	return func(s *gameService) { s.engineOpts = fn }
}

type gameService struct {
	catalog    *catalog.Catalog
	cfg        GameServiceConfig
	now        func() time.Time
	engineOpts func() []engine.Option

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewGameService creates a new GameService
func NewGameService(c *catalog.Catalog, cfg GameServiceConfig, opts ...GameServiceOption) GameService {
	if cfg.DefaultRounds <= 0 {
		cfg.DefaultRounds = engine.DefaultRounds
	}
	if cfg.MaxRounds < cfg.DefaultRounds {
		cfg.MaxRounds = cfg.DefaultRounds
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	s := &gameService{
		catalog:  c,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *gameService) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *gameService) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating game: variant=%s, difficulty=%d, rounds=%d, level=%s", req.Variant, req.Difficulty, req.Rounds, req.Level)

	variant, err := models.ParseVariant(string(req.Variant))
	if err != nil {
		return nil, errors.NewValidationError("variant", "must be one of trend, budget, shopping, guess, memory")
	}
	if req.Difficulty != models.AnyDifficulty && !req.Difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", fmt.Sprintf("must be between %d and %d", models.MinDifficulty, models.MaxDifficulty))
	}
	rounds := req.Rounds
	if rounds == 0 {
		rounds = s.cfg.DefaultRounds
	}
	if rounds < 1 || rounds > s.cfg.MaxRounds {
		return nil, errors.NewValidationError("rounds", fmt.Sprintf("must be between 1 and %d", s.cfg.MaxRounds))
	}
	level := models.LevelEasy
	if variant == models.VariantMemory && req.Level != "" {
		if level, err = models.ParseMemoryLevel(string(req.Level)); err != nil {
			return nil, errors.NewValidationError("level", "must be 'easy', 'medium', or 'hard'")
		}
	}

	now := s.now()
	sess := &session{
		id:        uuid.NewString(),
		variant:   variant,
		level:     level,
		createdAt: now,
		lastSeen:  now,
	}

	opts := []engine.Option{engine.WithLogger(log.WithPrefix("engine").WithField("session", sess.id))}
	if s.engineOpts != nil {
		opts = append(opts, s.engineOpts()...)
	}
	settings := engine.Settings{Difficulty: req.Difficulty, Rounds: rounds}
	switch variant {
	case models.VariantTrend:
		sess.rounds = trendGame{engine.NewTrendGame(s.catalog, settings, opts...)}
	case models.VariantBudget:
		sess.rounds = budgetGame{engine.NewBudgetGame(s.catalog, settings, opts...)}
	case models.VariantShopping:
		sess.rounds = shoppingGame{engine.NewShoppingGame(s.catalog, settings, opts...)}
	case models.VariantGuess:
		sess.rounds = guessGame{engine.NewGuessGame(s.catalog, settings, opts...)}
	case models.VariantMemory:
		opts = append(opts, engine.WithNotify(func(st engine.MemoryState) {
			sess.publish(Snapshot{
				ID:        sess.id,
				Variant:   sess.variant,
				CreatedAt: sess.createdAt,
				UpdatedAt: s.now(),
				State:     st.Masked(),
			})
		}))
		sess.memory = engine.NewMemoryGame(s.catalog, opts...)
	}

	s.mu.Lock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		log.Warn("session registry full: %d sessions", s.cfg.MaxSessions)
		return nil, errors.NewCapacityError("game sessions", s.cfg.MaxSessions)
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info("game created: id=%s, variant=%s", sess.id, variant)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	snap := sess.snapshotLocked()
	return &snap, nil
}

func (s *gameService) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("game", id)
	}
	return sess, nil
}

// apply runs op under the session lock and publishes the new state when op
// reports a change. A false result turns into a conflict error.
func (s *gameService) apply(ctx context.Context, id, action string, op func(*session) (bool, error)) (*Snapshot, error) {
	log := logger.FromContext(ctx)
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.touch(s.now())
	applied, err := op(sess)
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !applied {
		log.Debug("%s had no effect: game_id=%s", action, id)
		return nil, errors.NewConflictError(fmt.Sprintf("cannot %s in the game's current state", action))
	}
	if sess.memory == nil {
		sess.publish(snap)
	}
	log.Debug("%s applied: game_id=%s", action, id)
	return &snap, nil
}

func (s *gameService) Get(ctx context.Context, id string) (*Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch(s.now())
	snap := sess.snapshotLocked()
	return &snap, nil
}

func (s *gameService) Start(ctx context.Context, id string) (*Snapshot, error) {
	return s.apply(ctx, id, "start", func(sess *session) (bool, error) {
		if sess.memory != nil {
			return sess.memory.Start(sess.level), nil
		}
		return sess.rounds.Start(), nil
	})
}

func (s *gameService) Submit(ctx context.Context, id string, answer Answer) (*Snapshot, error) {
	return s.apply(ctx, id, "submit an answer", func(sess *session) (bool, error) {
		switch g := sess.rounds.(type) {
		case trendGame:
			if !(answer.PredictedPrice > 0) {
				return false, errors.NewValidationError("predicted_price", "must be a positive number")
			}
			if !answer.Confidence.Valid() {
				return false, errors.NewValidationError("confidence", "must be 'low', 'medium', or 'high'")
			}
			return g.Submit(models.TrendPrediction{
				PredictedPrice: answer.PredictedPrice,
				Confidence:     answer.Confidence,
				Reasoning:      answer.Reasoning,
			}), nil
		case budgetGame:
			for categoryID, amount := range answer.Allocations {
				if amount < 0 {
					return false, errors.NewValidationError("allocations", fmt.Sprintf("amount for %s must not be negative", categoryID))
				}
			}
			return g.SubmitAllocations(answer.Allocations), nil
		case shoppingGame:
			for itemID, qty := range answer.Quantities {
				if qty < 0 {
					return false, errors.NewValidationError("quantities", fmt.Sprintf("quantity for %s must not be negative", itemID))
				}
			}
			return g.SubmitQuantities(answer.Quantities), nil
		case guessGame:
			if !(answer.Guess > 0) {
				return false, errors.NewValidationError("guess", "must be a positive number")
			}
			return g.Submit(answer.Guess), nil
		}
		return false, errors.NewBadRequestError("the memory game takes flips, not answers")
	})
}

func (s *gameService) Next(ctx context.Context, id string) (*Snapshot, error) {
	return s.apply(ctx, id, "advance to the next round", func(sess *session) (bool, error) {
		if sess.memory != nil {
			return false, errors.NewBadRequestError("the memory game has no rounds")
		}
		return sess.rounds.NextRound(), nil
	})
}

func (s *gameService) Reset(ctx context.Context, id string) (*Snapshot, error) {
	return s.apply(ctx, id, "reset", func(sess *session) (bool, error) {
		if sess.memory != nil {
			if sess.memory.Reset() {
				return true, nil
			}
			return sess.memory.Start(sess.level), nil
		}
		return sess.rounds.Reset(), nil
	})
}

func (s *gameService) Flip(ctx context.Context, id string, cardID string) (*Snapshot, error) {
	if cardID == "" {
		return nil, errors.NewValidationError("cardId", "is required")
	}
	return s.apply(ctx, id, "flip that card", func(sess *session) (bool, error) {
		if sess.memory == nil {
			return false, errors.NewBadRequestError("only the memory game has cards to flip")
		}
		return sess.memory.Flip(cardID), nil
	})
}

func (s *gameService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return errors.NewNotFoundError("game", id)
	}
	sess.close()
	logger.FromContext(ctx).Info("game deleted: id=%s", id)
	return nil
}

func (s *gameService) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	sess.mu.Lock()
	sess.touch(s.now())
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	ch, cancel := sess.subscribe(snap)
	logger.FromContext(ctx).Debug("subscribed to game: id=%s", id)
	return ch, cancel, nil
}

// Sweep removes sessions idle for longer than the configured TTL.
func (s *gameService) Sweep(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-s.cfg.SessionTTL)

	var expired []*session
	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
	}
	if len(expired) > 0 {
		logger.FromContext(ctx).Debug("swept %d sessions idle since %s", len(expired), cutoff.Format(time.RFC3339))
	}
	return len(expired)
}
