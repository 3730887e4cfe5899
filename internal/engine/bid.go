package engine

import (
	"context"
	"errors"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// ProxyBid is one proxy bid fired during resolution.
type ProxyBid struct {
	Team   string
	Amount int64
}

// BidResult reports an accepted bid.
type BidResult struct {
	// Team and Amount are the leader and current bid after proxy
	// resolution; they may differ from the human bid when proxies fired.
	Team   string
	Amount int64

	// HumanAmount is the amount the human bid was accepted at.
	HumanAmount int64

	// ProxyBids lists proxy bids triggered by this bid, in firing order.
	ProxyBids []ProxyBid
}

// Bidder identifies who placed a bid, as supplied by the chat layer.
type Bidder struct {
	Team     string
	UserID   int64
	UserName string
}

// PlaceBid attempts a bid on the current player for the given team.
//
// The engine lock is held for the whole operation, including the
// persistence round-trip and proxy resolution, so two near-simultaneous
// bids can never both compute the same next minimum.
//
// The accepted amount is always the computed minimum - base price when
// no leader exists, otherwise current bid plus the configured increment.
// This is a strict ascending auction; bidders do not supply amounts.
func (e *Engine) PlaceBid(ctx context.Context, b Bidder) (BidResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Preconditions, in order; each failure is a distinct reason.
	if !e.state.Active {
		return BidResult{}, errf(ErrCodeInactive, "auction is not running")
	}
	if e.state.Paused {
		return BidResult{}, errf(ErrCodePaused, "auction is paused")
	}
	if e.state.CurrentPlayer == "" {
		return BidResult{}, errf(ErrCodeNoCurrent, "no player is currently being auctioned")
	}

	// A prior crash can leave a sold player open in the snapshot; never
	// accept bids on a player someone already owns.
	if _, err := e.db.RosterOwner(ctx, e.state.CurrentPlayer); err == nil {
		return BidResult{}, errf(ErrCodeIntegrity,
			"player %q is already on a roster", e.state.CurrentPlayer)
	} else if !errors.Is(err, store.ErrNotFound) {
		return BidResult{}, err
	}

	purse, err := e.requireTeam(ctx, b.Team)
	if err != nil {
		return BidResult{}, err
	}

	entry, err := e.db.PoolEntry(ctx, e.state.CurrentPlayer)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return BidResult{}, err
	}
	if err := e.checkCaps(ctx, b.Team, entry.Overseas); err != nil {
		return BidResult{}, err
	}

	if e.state.HighestBidder == b.Team {
		return BidResult{}, errf(ErrCodeSelfRaise, "%s is already the highest bidder", b.Team)
	}

	minBid := e.nextMinimum()
	if purse < minBid {
		return BidResult{}, errf(ErrCodeLowPurse,
			"insufficient purse: need %d, have %d", minBid, purse)
	}

	now := e.now()
	if err := e.db.RecordBid(ctx, store.BidRecord{
		Player:        e.state.CurrentPlayer,
		Team:          b.Team,
		UserID:        b.UserID,
		UserName:      b.UserName,
		Amount:        minBid,
		InteractionID: e.newID(),
		At:            now,
	}); err != nil {
		return BidResult{}, err
	}

	e.state.CurrentBid = minBid
	e.state.HighestBidder = b.Team
	e.state.LastBidTime = now
	if err := e.saveState(ctx); err != nil {
		return BidResult{}, err
	}

	proxies, err := e.resolveProxies(ctx)
	if err != nil {
		return BidResult{}, err
	}

	e.log.Info("bid accepted",
		"player", e.state.CurrentPlayer, "team", b.Team,
		"amount", minBid, "proxy_bids", len(proxies))

	return BidResult{
		Team:        e.state.HighestBidder,
		Amount:      e.state.CurrentBid,
		HumanAmount: minBid,
		ProxyBids:   proxies,
	}, nil
}

// nextMinimum computes the minimum acceptable bid: base price when no
// leader exists, otherwise the current bid plus the configured step.
// Callers must hold e.mu.
func (e *Engine) nextMinimum() int64 {
	if e.state.HighestBidder == "" {
		return e.state.BasePrice
	}
	return e.state.CurrentBid + e.rules.Increment(e.state.CurrentBid)
}

// checkCaps rejects teams at the squad cap, or at the overseas cap when
// the player being acquired carries the overseas flag. The flag belongs
// to the subject of the acquisition, which for trades is not the player
// currently under the hammer.
// Callers must hold e.mu.
func (e *Engine) checkCaps(ctx context.Context, team string, subjectOverseas bool) error {
	total, overseas, err := e.db.SquadCounts(ctx, team)
	if err != nil {
		return err
	}
	if total >= e.rules.SquadCap {
		return errf(ErrCodeSquadFull, "%s squad is full (%d players)", team, e.rules.SquadCap)
	}

	if subjectOverseas && overseas >= e.rules.OverseasCap {
		return errf(ErrCodeOverseasFull,
			"%s overseas slots are full (%d players)", team, e.rules.OverseasCap)
	}
	return nil
}

// resolveProxies runs proxy resolution after an accepted bid: while a
// team with an active proxy maximum can beat the next minimum, the one
// with the highest maximum (ties broken by team code) outbids at exactly
// the minimum. The winning price is therefore the minimum needed to beat
// the second-highest proxy, never the winner's true maximum.
// Callers must hold e.mu.
func (e *Engine) resolveProxies(ctx context.Context) ([]ProxyBid, error) {
	autos, err := e.db.ActiveAutoBids(ctx)
	if err != nil {
		return nil, err
	}
	if len(autos) == 0 {
		return nil, nil
	}
	purses, err := e.db.Teams(ctx)
	if err != nil {
		return nil, err
	}

	var fired []ProxyBid
	for round := 0; round < e.rules.MaxProxyRounds; round++ {
		next := e.state.CurrentBid + e.rules.Increment(e.state.CurrentBid)

		// autos is ordered by team code, so the first strictly-greater
		// maximum wins ties lexically.
		winner := ""
		var winnerMax int64 = -1
		for _, a := range autos {
			if a.Team == e.state.HighestBidder {
				continue
			}
			if a.Max >= next && purses[a.Team] >= next && a.Max > winnerMax {
				winner = a.Team
				winnerMax = a.Max
			}
		}
		if winner == "" {
			break
		}

		now := e.now()
		if err := e.db.RecordBid(ctx, store.BidRecord{
			Player:    e.state.CurrentPlayer,
			Team:      winner,
			UserID:    0,
			UserName:  "AUTO-BID",
			Amount:    next,
			IsAutoBid: true,
			At:        now,
		}); err != nil {
			return nil, err
		}

		e.state.CurrentBid = next
		e.state.HighestBidder = winner
		e.state.LastBidTime = now
		fired = append(fired, ProxyBid{Team: winner, Amount: next})
	}

	if len(fired) > 0 {
		if err := e.saveState(ctx); err != nil {
			return nil, err
		}
	}
	return fired, nil
}

// SetAutoBid sets a team's proxy maximum. The maximum must be covered by
// the team's purse and must not trail the current bid while a player is
// open.
func (e *Engine) SetAutoBid(ctx context.Context, team string, max int64, userID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	purse, err := e.requireTeam(ctx, team)
	if err != nil {
		return err
	}
	if max <= 0 {
		return errf(ErrCodeBadAmount, "auto-bid maximum must be positive")
	}
	if max > purse {
		return errf(ErrCodeLowPurse, "auto-bid maximum %d exceeds purse %d", max, purse)
	}
	if e.state.CurrentPlayer != "" && max < e.state.CurrentBid {
		return errf(ErrCodeBadAmount,
			"auto-bid maximum must be at least the current bid %d", e.state.CurrentBid)
	}

	return e.db.SetAutoBid(ctx, store.AutoBid{Team: team, Max: max, SetBy: userID})
}

// ClearAutoBid deactivates a team's proxy bid.
func (e *Engine) ClearAutoBid(ctx context.Context, team string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.requireTeam(ctx, team); err != nil {
		return err
	}
	return e.db.DeactivateAutoBid(ctx, team)
}
