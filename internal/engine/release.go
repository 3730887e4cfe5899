package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// ReleasePlayer removes a rostered player from their team, refunds the
// purchase price, and queues the player in the released pool at the
// front of the list order with a reset base price.
func (e *Engine) ReleasePlayer(ctx context.Context, player string) (store.SquadPlayer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	released, err := e.db.ReleasePlayer(ctx, player, e.rules.ReleasedList, e.rules.ReleasedBasePrice)
	if errors.Is(err, store.ErrNotFound) {
		return store.SquadPlayer{}, errf(ErrCodeUnknownPlayer, "%q is not on any roster", player)
	}
	if err != nil {
		return store.SquadPlayer{}, err
	}

	e.log.Info("player released",
		"player", player, "team", released.Team, "refund", released.Price)
	e.refresh()
	return released, nil
}

// ReauctionPlayer puts a previously resolved player (sold then rolled
// back, or passed unsold) back into the pool, in the accelerated list
// at the back of the order, keeping the original base price.
func (e *Engine) ReauctionPlayer(ctx context.Context, player string) (store.PoolPlayer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.db.ReauctionPlayer(ctx, player, e.rules.AcceleratedList)
	switch {
	case errors.Is(err, store.ErrDuplicatePlayer):
		return store.PoolPlayer{}, errf(ErrCodeOnRoster,
			"%q is on a roster; release the player first", player)
	case errors.Is(err, store.ErrNotFound):
		return store.PoolPlayer{}, errf(ErrCodeNotAuctioned,
			"%q has not been through the auction yet", player)
	case err != nil:
		return store.PoolPlayer{}, err
	}

	e.log.Info("player queued for re-auction", "player", player, "list", entry.List)
	e.refresh()
	return entry, nil
}
