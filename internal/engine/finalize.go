package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// SaleOutcome classifies finalization results.
type SaleOutcome int

const (
	// OutcomeNoPlayer means there was nothing to finalize.
	OutcomeNoPlayer SaleOutcome = iota

	// OutcomeSold means the player went to the highest bidder.
	OutcomeSold

	// OutcomeUnsold means the player received no bids.
	OutcomeUnsold
)

// SaleResult reports a finalized player.
type SaleResult struct {
	Outcome   SaleOutcome
	Player    string
	Team      string // winner; empty when unsold
	Amount    int64  // sale price, or base price when unsold
	TotalBids int
}

// FinalizeSale converts the current leading bid (or lack of one) into a
// permanent sale or unsold record. Triggered externally on countdown
// expiry.
//
// The persisted snapshot is re-read first, defending against concurrent
// finalize calls, and the bid ledger (not the in-memory mirror) is the
// authority for who won and at what amount. The sale itself is one
// atomic store operation; on any integrity failure nothing is mutated,
// the failure is reported, and the stale current-player state is
// cleared.
func (e *Engine) FinalizeSale(ctx context.Context) (SaleResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.reloadState(ctx); err != nil {
		return SaleResult{}, err
	}
	if e.state.CurrentPlayer == "" {
		return SaleResult{Outcome: OutcomeNoPlayer}, nil
	}
	player := e.state.CurrentPlayer

	top, err := e.db.HighestBid(ctx, player)
	if errors.Is(err, store.ErrNotFound) {
		return e.finalizeUnsold(ctx, player)
	}
	if err != nil {
		return SaleResult{}, err
	}

	totalBids, err := e.db.CountBids(ctx, player)
	if err != nil {
		return SaleResult{}, err
	}

	entry, err := e.db.PoolEntry(ctx, player)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return SaleResult{}, err
	}

	err = e.db.FinalizeSale(ctx, player, top.Team, top.Amount, totalBids, entry.Overseas)
	switch {
	case errors.Is(err, store.ErrDuplicatePlayer):
		// Stale snapshot: a previous finalize already sold this player.
		e.log.Warn("finalize found player already rostered", "player", player)
		e.clearCurrentPlayer()
		if err := e.saveState(ctx); err != nil {
			return SaleResult{}, err
		}
		return SaleResult{}, errf(ErrCodeIntegrity, "player %q is already on a roster", player)
	case errors.Is(err, store.ErrInsufficientFunds):
		// Data-integrity failure: the ledger accepted a bid the purse can
		// no longer cover. The finalize is aborted as a no-op.
		e.log.Warn("finalize aborted: purse cannot cover winning bid",
			"player", player, "team", top.Team, "amount", top.Amount)
		return SaleResult{}, errf(ErrCodeIntegrity,
			"%s cannot cover winning bid of %d for %q", top.Team, top.Amount, player)
	case err != nil:
		return SaleResult{}, err
	}

	e.clearCurrentPlayer()
	if err := e.saveState(ctx); err != nil {
		return SaleResult{}, err
	}

	e.log.Info("player sold", "player", player, "team", top.Team, "amount", top.Amount)
	e.refresh()

	return SaleResult{
		Outcome:   OutcomeSold,
		Player:    player,
		Team:      top.Team,
		Amount:    top.Amount,
		TotalBids: totalBids,
	}, nil
}

// finalizeUnsold records a no-bid player as unsold at its base price.
// Callers must hold e.mu.
func (e *Engine) finalizeUnsold(ctx context.Context, player string) (SaleResult, error) {
	base := e.state.BasePrice
	if err := e.db.RecordUnsold(ctx, player, base, 0); err != nil {
		return SaleResult{}, err
	}

	e.clearCurrentPlayer()
	if err := e.saveState(ctx); err != nil {
		return SaleResult{}, err
	}

	e.log.Info("player unsold", "player", player, "base_price", base)
	e.refresh()

	return SaleResult{Outcome: OutcomeUnsold, Player: player, Amount: base}, nil
}

// SoldTo is the admin override that sells the current player to a named
// team at the current bid, regardless of who leads the ledger. Cap and
// purse checks still apply.
func (e *Engine) SoldTo(ctx context.Context, team string) (SaleResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.reloadState(ctx); err != nil {
		return SaleResult{}, err
	}
	if e.state.CurrentPlayer == "" {
		return SaleResult{}, errf(ErrCodeNoCurrent, "no player is currently being auctioned")
	}
	player := e.state.CurrentPlayer

	if _, err := e.requireTeam(ctx, team); err != nil {
		return SaleResult{}, err
	}
	entry, err := e.db.PoolEntry(ctx, player)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return SaleResult{}, err
	}
	if err := e.checkCaps(ctx, team, entry.Overseas); err != nil {
		return SaleResult{}, err
	}

	totalBids, err := e.db.CountBids(ctx, player)
	if err != nil {
		return SaleResult{}, err
	}

	amount := e.state.CurrentBid
	err = e.db.FinalizeSale(ctx, player, team, amount, totalBids, entry.Overseas)
	switch {
	case errors.Is(err, store.ErrDuplicatePlayer):
		return SaleResult{}, errf(ErrCodeIntegrity, "player %q is already on a roster", player)
	case errors.Is(err, store.ErrInsufficientFunds):
		return SaleResult{}, errf(ErrCodeLowPurse, "%s cannot cover %d", team, amount)
	case err != nil:
		return SaleResult{}, err
	}

	e.clearCurrentPlayer()
	if err := e.saveState(ctx); err != nil {
		return SaleResult{}, err
	}

	e.log.Info("player sold by admin", "player", player, "team", team, "amount", amount)
	e.refresh()

	return SaleResult{
		Outcome:   OutcomeSold,
		Player:    player,
		Team:      team,
		Amount:    amount,
		TotalBids: totalBids,
	}, nil
}

// SkipPlayer requeues the current player into the skipped pool at the
// back of the list order without recording a disposition, then clears
// the current-player state.
func (e *Engine) SkipPlayer(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.CurrentPlayer == "" {
		return "", errf(ErrCodeNoCurrent, "no player is currently being auctioned")
	}
	player := e.state.CurrentPlayer

	entry, err := e.db.PoolEntry(ctx, player)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	if err := e.db.RequeueCurrent(ctx, player, e.rules.SkippedList,
		e.state.BasePrice, entry.Overseas); err != nil {
		return "", err
	}
	if err := e.db.ClearAutoBids(ctx); err != nil {
		return "", err
	}

	e.clearCurrentPlayer()
	if err := e.saveState(ctx); err != nil {
		return "", err
	}

	e.log.Info("player skipped", "player", player)
	return player, nil
}
