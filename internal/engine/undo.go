package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// UndoLastBid deletes the most recent bid on the current player and
// restores the prior leader, or the open-at-base state when the deleted
// bid was the only one. Only bids on the player currently under the
// hammer can be undone; completed sales are reversed with
// RollbackLastSale instead.
func (e *Engine) UndoLastBid(ctx context.Context) (store.BidRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Active {
		return store.BidRecord{}, errf(ErrCodeInactive, "no auction is running")
	}
	if e.state.CurrentPlayer == "" {
		return store.BidRecord{}, errf(ErrCodeNoCurrent, "no player is currently being auctioned")
	}
	player := e.state.CurrentPlayer

	last, err := e.db.LatestBid(ctx, player)
	if errors.Is(err, store.ErrNotFound) {
		return store.BidRecord{}, errf(ErrCodeNoBids, "no bids recorded for %q", player)
	}
	if err != nil {
		return store.BidRecord{}, err
	}

	if err := e.db.DeleteBid(ctx, last.ID); err != nil {
		return store.BidRecord{}, err
	}

	prev, err := e.db.HighestBid(ctx, player)
	switch {
	case errors.Is(err, store.ErrNotFound):
		e.state.CurrentBid = e.state.BasePrice
		e.state.HighestBidder = ""
	case err != nil:
		return store.BidRecord{}, err
	default:
		e.state.CurrentBid = prev.Amount
		e.state.HighestBidder = prev.Team
	}
	if err := e.saveState(ctx); err != nil {
		return store.BidRecord{}, err
	}

	e.log.Info("bid undone",
		"player", player, "team", last.Team, "amount", last.Amount)
	return last, nil
}

// RollbackLastSale reverses the most recent completed sale: the buyer
// is refunded, the roster row removed, and the sale record deleted. The
// player is not automatically requeued; use ReauctionPlayer for that.
func (e *Engine) RollbackLastSale(ctx context.Context) (store.SaleRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sale, err := e.db.RollbackLastSale(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return store.SaleRecord{}, errf(ErrCodeNoSales, "no completed sales to roll back")
	}
	if err != nil {
		return store.SaleRecord{}, err
	}

	e.log.Info("sale rolled back",
		"player", sale.Player, "team", sale.Team, "amount", sale.Price)
	e.refresh()
	return sale, nil
}
