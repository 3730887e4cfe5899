package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// CompensationPayer names which side of a swap pays the cash
// compensation, if any.
type CompensationPayer int

const (
	PayerNone CompensationPayer = iota
	PayerA
	PayerB
)

// TradeResult reports a completed cash trade or one half of a swap.
type TradeResult struct {
	TradeID string
	Player  store.SquadPlayer
	From    string
	To      string
	Price   int64
}

// CashTrade moves a rostered player from one team to another for a cash
// price. The buyer pays the trade price; the seller is credited.
func (e *Engine) CashTrade(ctx context.Context, player, from, to string, price int64) (TradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if price <= 0 {
		return TradeResult{}, errf(ErrCodeBadAmount, "trade price must be positive, got %d", price)
	}
	if from == to {
		return TradeResult{}, errf(ErrCodeSameTeam, "cannot trade %q within the same team", player)
	}
	if _, err := e.requireTeam(ctx, from); err != nil {
		return TradeResult{}, err
	}
	if _, err := e.requireTeam(ctx, to); err != nil {
		return TradeResult{}, err
	}

	owner, err := e.db.RosterOwner(ctx, player)
	if errors.Is(err, store.ErrNotFound) {
		return TradeResult{}, errf(ErrCodeUnknownPlayer, "%q is not on any roster", player)
	}
	if err != nil {
		return TradeResult{}, err
	}
	if owner.Team != from {
		return TradeResult{}, errf(ErrCodeUnknownPlayer,
			"%q is rostered by %s, not %s", player, owner.Team, from)
	}
	if err := e.checkCaps(ctx, to, owner.Overseas); err != nil {
		return TradeResult{}, err
	}

	tradeID := e.newID()
	moved, err := e.db.ApplyCashTrade(ctx, tradeID, player, from, to, price)
	if errors.Is(err, store.ErrInsufficientFunds) {
		return TradeResult{}, errf(ErrCodeLowPurse, "%s cannot cover trade price %d", to, price)
	}
	if err != nil {
		return TradeResult{}, err
	}

	e.log.Info("cash trade completed",
		"trade_id", tradeID, "player", player, "from", from, "to", to, "price", price)
	e.refresh()

	return TradeResult{TradeID: tradeID, Player: moved, From: from, To: to, Price: price}, nil
}

// Swap exchanges two rostered players between their teams. Purses are
// adjusted by the difference in the players' original sale prices, plus
// an optional cash compensation paid by one side.
func (e *Engine) Swap(ctx context.Context, playerA, playerB string, comp int64, payer CompensationPayer) (TradeResult, TradeResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if comp < 0 {
		return TradeResult{}, TradeResult{}, errf(ErrCodeBadAmount,
			"compensation must not be negative, got %d", comp)
	}
	if comp > 0 && payer == PayerNone {
		return TradeResult{}, TradeResult{}, errf(ErrCodeBadPayer,
			"compensation of %d requires a paying side", comp)
	}
	if comp == 0 {
		payer = PayerNone
	}

	rowA, err := e.db.RosterOwner(ctx, playerA)
	if errors.Is(err, store.ErrNotFound) {
		return TradeResult{}, TradeResult{}, errf(ErrCodeUnknownPlayer, "%q is not on any roster", playerA)
	}
	if err != nil {
		return TradeResult{}, TradeResult{}, err
	}
	rowB, err := e.db.RosterOwner(ctx, playerB)
	if errors.Is(err, store.ErrNotFound) {
		return TradeResult{}, TradeResult{}, errf(ErrCodeUnknownPlayer, "%q is not on any roster", playerB)
	}
	if err != nil {
		return TradeResult{}, TradeResult{}, err
	}
	if rowA.Team == rowB.Team {
		return TradeResult{}, TradeResult{}, errf(ErrCodeSameTeam,
			"%q and %q are both rostered by %s", playerA, playerB, rowA.Team)
	}

	var compPayer string
	switch payer {
	case PayerNone:
	case PayerA:
		compPayer = rowA.Team
	case PayerB:
		compPayer = rowB.Team
	default:
		return TradeResult{}, TradeResult{}, errf(ErrCodeBadPayer, "unknown compensation payer %d", payer)
	}

	tradeID := e.newID()
	movedA, movedB, err := e.db.ApplySwap(ctx, tradeID, playerA, playerB, comp, compPayer)
	if errors.Is(err, store.ErrInsufficientFunds) {
		return TradeResult{}, TradeResult{}, errf(ErrCodeLowPurse,
			"a team cannot cover its side of the swap")
	}
	if err != nil {
		return TradeResult{}, TradeResult{}, err
	}

	e.log.Info("swap completed",
		"trade_id", tradeID,
		"player_a", playerA, "team_a", rowA.Team,
		"player_b", playerB, "team_b", rowB.Team,
		"compensation", comp)
	e.refresh()

	resA := TradeResult{TradeID: tradeID, Player: movedA, From: rowA.Team, To: rowB.Team, Price: rowA.Price}
	resB := TradeResult{TradeID: tradeID, Player: movedB, From: rowB.Team, To: rowA.Team, Price: rowB.Price}
	return resA, resB, nil
}

// Trades returns the recorded trade history, newest first.
func (e *Engine) Trades(ctx context.Context) ([]store.TradeRecord, error) {
	return e.db.Trades(ctx)
}
