package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// NextPlayer is the outcome of advancing the player cursor.
type NextPlayer struct {
	Name      string
	BasePrice int64
	Overseas  bool
	List      string

	// NewList is true when this is the first player drawn from its pool
	// list; callers use it to announce a new set.
	NewList bool
}

// SelectNextPlayer advances to the next player up for auction.
//
// If a current player exists and is unresolved (on no roster, no
// disposition recorded), it is returned unchanged - this makes the call
// idempotent and recovers cleanly after a crash mid-player.
//
// Otherwise the pool lists are scanned starting at the list cursor,
// drawing one uniformly-random unresolved player from the first
// non-empty pool. If the scan reaches the end of the order it wraps once
// to the start, so lists added behind the cursor are still reachable.
// The chosen player is marked auctioned, becomes the current player at
// its base price, and all proxy bids from the previous player are
// cleared.
func (e *Engine) SelectNextPlayer(ctx context.Context) (NextPlayer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active {
		return NextPlayer{}, errf(ErrCodeInactive, "auction is not running")
	}

	if e.state.CurrentPlayer != "" {
		unresolved, err := e.currentUnresolved(ctx)
		if err != nil {
			return NextPlayer{}, err
		}
		if unresolved {
			entry, err := e.db.PoolEntry(ctx, e.state.CurrentPlayer)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return NextPlayer{}, err
			}
			return NextPlayer{
				Name:      e.state.CurrentPlayer,
				BasePrice: e.state.BasePrice,
				Overseas:  entry.Overseas,
				List:      entry.List,
			}, nil
		}
	}

	order, err := e.db.ListOrder(ctx)
	if err != nil {
		return NextPlayer{}, err
	}
	if len(order) == 0 {
		return NextPlayer{}, errf(ErrCodeNoLists, "no player lists available")
	}

	cursor := e.state.CurrentListIndex
	if cursor >= len(order) {
		cursor = 0
	}

	// Walk from the cursor to the end, then wrap once to the start.
	for offset := 0; offset < len(order); offset++ {
		idx := (cursor + offset) % len(order)
		list := order[idx]

		pick, err := e.db.RandomUnresolved(ctx, list)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return NextPlayer{}, err
		}

		if err := e.db.MarkAuctioned(ctx, pick.ID); err != nil {
			return NextPlayer{}, err
		}
		if err := e.db.ClearAutoBids(ctx); err != nil {
			return NextPlayer{}, err
		}

		base := pick.BasePrice
		if base <= 0 {
			base = e.rules.DefaultBasePrice
		}

		e.state.CurrentPlayer = pick.Name
		e.state.CurrentListIndex = idx
		e.state.BasePrice = base
		e.state.CurrentBid = base
		e.state.HighestBidder = ""
		e.state.LastBidTime = e.now()
		if err := e.saveState(ctx); err != nil {
			return NextPlayer{}, err
		}

		drawn, err := e.db.AuctionedCount(ctx, list)
		if err != nil {
			return NextPlayer{}, err
		}

		e.log.Info("player up for auction",
			"player", pick.Name, "list", list, "base_price", base)

		return NextPlayer{
			Name:      pick.Name,
			BasePrice: base,
			Overseas:  pick.Overseas,
			List:      list,
			NewList:   drawn == 1,
		}, nil
	}

	return NextPlayer{}, errf(ErrCodeNoPlayers, "no players remaining in any list")
}

// currentUnresolved reports whether the current player is still open: on
// no roster and with no resolving disposition. A released row from an
// earlier ownership does not resolve the player; a re-drawn released
// player must stay current until sold or unsold.
// Callers must hold e.mu.
func (e *Engine) currentUnresolved(ctx context.Context) (bool, error) {
	_, err := e.db.RosterOwner(ctx, e.state.CurrentPlayer)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	sold, err := e.db.SaleResolvedFor(ctx, e.state.CurrentPlayer)
	if err != nil {
		return false, err
	}
	return !sold, nil
}
