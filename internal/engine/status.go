package engine

import (
	"context"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// Status is a read-only snapshot of the whole auction, assembled for
// display layers.
type Status struct {
	Active        bool
	Paused        bool
	CurrentPlayer string
	BasePrice     int64
	CurrentBid    int64
	HighestBidder string
	Countdown     int
	Teams         map[string]int64
	PoolRemaining map[string]int
}

// Status assembles the live snapshot: state mirror, team purses, and
// how many unauctioned players each pool list still holds.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	e.mu.Lock()
	st := e.state
	e.mu.Unlock()

	teams, err := e.db.Teams(ctx)
	if err != nil {
		return Status{}, err
	}
	pools, err := e.db.PoolLists(ctx)
	if err != nil {
		return Status{}, err
	}
	remaining := make(map[string]int, len(pools))
	for list, players := range pools {
		remaining[list] = len(players)
	}

	return Status{
		Active:        st.Active,
		Paused:        st.Paused,
		CurrentPlayer: st.CurrentPlayer,
		BasePrice:     st.BasePrice,
		CurrentBid:    st.CurrentBid,
		HighestBidder: st.HighestBidder,
		Countdown:     st.CountdownSeconds,
		Teams:         teams,
		PoolRemaining: remaining,
	}, nil
}

// Squads returns every team's roster, including empty ones.
func (e *Engine) Squads(ctx context.Context) (map[string][]store.SquadPlayer, error) {
	return e.db.AllSquads(ctx)
}

// Squad returns one team's roster.
func (e *Engine) Squad(ctx context.Context, team string) ([]store.SquadPlayer, error) {
	if _, err := e.requireTeam(ctx, team); err != nil {
		return nil, err
	}
	return e.db.SquadOf(ctx, team)
}

// Sales returns the full disposition history, newest first.
func (e *Engine) Sales(ctx context.Context) ([]store.SaleRecord, error) {
	return e.db.Sales(ctx)
}

// Bids returns the ledger for one player in chronological order.
func (e *Engine) Bids(ctx context.Context, player string) ([]store.BidRecord, error) {
	return e.db.BidsForPlayer(ctx, player)
}

// RecentBids returns the most recent ledger entries across all players.
func (e *Engine) RecentBids(ctx context.Context, limit int) ([]store.BidRecord, error) {
	return e.db.RecentBids(ctx, limit)
}

// AutoBids returns the proxy bids still armed for the current player.
func (e *Engine) AutoBids(ctx context.Context) ([]store.AutoBid, error) {
	return e.db.ActiveAutoBids(ctx)
}
