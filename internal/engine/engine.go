package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// Refresher regenerates external reports after a sale. It is a
// best-effort side effect: the engine never blocks on it and a failure
// never rolls back the owning operation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Engine owns the auction state machine.
//
// It keeps an in-memory mirror of the persisted auction-state row and
// serializes every money-moving operation behind one mutex held for the
// operation's full duration, including the persistence round-trip. The
// mirror is written back to the store after each mutation and reloaded
// at the start of finalization, so money-moving decisions never rely on
// in-memory-only truth.
type Engine struct {
	mu    sync.Mutex
	db    *store.Store
	rules Rules
	log   *slog.Logger

	refresher Refresher
	now       func() time.Time
	newID     func() string

	state store.StateRow
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRefresher attaches a best-effort report refresher.
func WithRefresher(r Refresher) Option {
	return func(e *Engine) { e.refresher = r }
}

// WithClock overrides the wall clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides bid/trade id generation. Used by tests.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New creates an Engine over the given store, reloading the state mirror
// from the persisted snapshot so an auction survives process restart.
func New(ctx context.Context, db *store.Store, rules Rules, opts ...Option) (*Engine, error) {
	e := &Engine{
		db:    db,
		rules: rules,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	st, err := db.AuctionState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load auction state: %w", err)
	}
	if st.CountdownSeconds == 0 {
		st.CountdownSeconds = rules.DefaultCountdown
	}
	e.state = st
	return e, nil
}

// Rules returns the active policy constants.
func (e *Engine) Rules() Rules {
	return e.rules
}

// State returns a copy of the current state mirror.
func (e *Engine) State() store.StateRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// saveState writes the mirror back to the snapshot row.
// Callers must hold e.mu.
func (e *Engine) saveState(ctx context.Context) error {
	if err := e.db.SaveAuctionState(ctx, e.state); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// reloadState re-reads the snapshot row into the mirror.
// Callers must hold e.mu.
func (e *Engine) reloadState(ctx context.Context) error {
	st, err := e.db.AuctionState(ctx)
	if err != nil {
		return fmt.Errorf("reload state: %w", err)
	}
	e.state = st
	return nil
}

// clearCurrentPlayer resets the per-player mirror fields.
// Callers must hold e.mu.
func (e *Engine) clearCurrentPlayer() {
	e.state.CurrentPlayer = ""
	e.state.BasePrice = 0
	e.state.CurrentBid = 0
	e.state.HighestBidder = ""
	e.state.LastBidTime = e.now()
}

// requireTeam verifies that a team code resolves to a known team and
// returns its current purse. Team-code checks by the chat layer are
// advisory only; the engine always re-validates.
func (e *Engine) requireTeam(ctx context.Context, team string) (int64, error) {
	purse, err := e.db.TeamPurse(ctx, team)
	if errors.Is(err, store.ErrNotFound) {
		return 0, errf(ErrCodeUnknownTeam, "unknown team %q", team)
	}
	if err != nil {
		return 0, err
	}
	return purse, nil
}

// refresh queues a best-effort report regeneration outside the engine
// lock. A slow or failing report write never stalls bidding.
func (e *Engine) refresh() {
	if e.refresher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.refresher.Refresh(ctx); err != nil {
			e.log.Warn("report refresh failed", "error", err)
		}
	}()
}
