package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// Start begins the auction. Fails if already active or no pool lists
// exist. The list order is initialized from existing pools when unset,
// and the list cursor resets to zero.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Active {
		return errf(ErrCodeAlreadyActive, "auction is already running")
	}

	pools, err := e.db.PoolLists(ctx)
	if err != nil {
		return err
	}
	if len(pools) == 0 {
		return errf(ErrCodeNoLists, "no player lists available")
	}

	order, err := e.db.ListOrder(ctx)
	if err != nil {
		return err
	}
	if len(order) == 0 {
		for name := range pools {
			order = append(order, name)
		}
		sort.Strings(order)
		if err := e.db.SetListOrder(ctx, order); err != nil {
			return err
		}
	}

	e.state.Active = true
	e.state.Paused = false
	e.state.CurrentListIndex = 0
	return e.saveState(ctx)
}

// Stop ends the auction and clears all current-player fields.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active {
		return errf(ErrCodeInactive, "auction is not running")
	}

	if err := e.db.ResetAuctionState(ctx); err != nil {
		return err
	}
	if err := e.db.ClearAutoBids(ctx); err != nil {
		return err
	}
	return e.reloadState(ctx)
}

// Pause suspends bidding. Valid only while running.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active {
		return errf(ErrCodeInactive, "auction is not running")
	}
	if e.state.Paused {
		return errf(ErrCodePaused, "auction is already paused")
	}

	e.state.Paused = true
	return e.saveState(ctx)
}

// Resume continues a paused auction. The last-bid timestamp resets to
// now so elapsed-time countdown logic restarts cleanly.
func (e *Engine) Resume(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active {
		return errf(ErrCodeInactive, "auction is not running")
	}
	if !e.state.Paused {
		return errf(ErrCodeNotPaused, "auction is not paused")
	}

	e.state.Paused = false
	e.state.LastBidTime = e.now()
	return e.saveState(ctx)
}

// SetCountdown changes the countdown length, bounds-checked against the
// configured range.
func (e *Engine) SetCountdown(ctx context.Context, seconds int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seconds < e.rules.MinCountdown || seconds > e.rules.MaxCountdown {
		return errf(ErrCodeBadCountdown, "countdown must be %d-%d seconds",
			e.rules.MinCountdown, e.rules.MaxCountdown)
	}

	e.state.CountdownSeconds = seconds
	return e.saveState(ctx)
}

// SetPurse is the explicit admin override for a team's purse; the only
// purse mutation that bypasses sufficiency checks.
func (e *Engine) SetPurse(ctx context.Context, team string, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount < 0 {
		return errf(ErrCodeBadAmount, "purse cannot be negative")
	}
	if err := e.db.SetPurse(ctx, team, amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errf(ErrCodeUnknownTeam, "unknown team %q", team)
		}
		return err
	}
	return nil
}

// AssignUserTeam maps a chat user to a team.
func (e *Engine) AssignUserTeam(ctx context.Context, userID int64, team, userName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.requireTeam(ctx, team); err != nil {
		return err
	}
	return e.db.AssignUserTeam(ctx, userID, team, userName)
}

// UserTeam returns the team a chat user is assigned to.
func (e *Engine) UserTeam(ctx context.Context, userID int64) (string, error) {
	team, err := e.db.UserTeam(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", errf(ErrCodeUnknownTeam, "user %d has no team assigned", userID)
	}
	return team, err
}

// ClearAll wipes the auction back to its seeded state: purses restored,
// pools, ledger, proxy bids, sales and trades cleared.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.db.FullReset(ctx); err != nil {
		return err
	}
	if err := e.reloadState(ctx); err != nil {
		return err
	}
	if e.state.CountdownSeconds == 0 {
		e.state.CountdownSeconds = e.rules.DefaultCountdown
	}
	e.refresh()
	return nil
}
