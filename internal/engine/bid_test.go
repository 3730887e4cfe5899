package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/testutil"
)

func TestPlaceBid_FirstBidAtBasePrice(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Opening Name", 1_000_000)

	res, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1, UserName: "one"})
	require.NoError(t, err)

	assert.Equal(t, "CSK", res.Team)
	assert.Equal(t, int64(1_000_000), res.Amount)
	assert.Equal(t, int64(1_000_000), res.HumanAmount)
	assert.Empty(t, res.ProxyBids)
}

func TestPlaceBid_StrictAscending(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Contested Name", 2_000_000)

	_, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)

	res, err := eng.PlaceBid(ctx, Bidder{Team: "MI", UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), res.Amount)

	res, err = eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), res.Amount)

	// Ledger amounts strictly increase.
	bids, err := db.BidsForPlayer(ctx, "Contested Name")
	require.NoError(t, err)
	require.Len(t, bids, 3)
	for i := 1; i < len(bids); i++ {
		assert.Greater(t, bids[i].Amount, bids[i-1].Amount)
	}
}

func TestPlaceBid_SelfRaiseRejected(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Led Name", 2_000_000)

	_, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)

	_, err = eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	assert.Equal(t, ErrCodeSelfRaise, CodeOf(err))
}

func TestPlaceBid_Preconditions(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)

	// Inactive auction.
	_, err := eng.PlaceBid(ctx, Bidder{Team: "CSK"})
	assert.Equal(t, ErrCodeInactive, CodeOf(err))

	startWithPlayer(t, eng, db, "Gated Name", 2_000_000)

	// Unknown team.
	_, err = eng.PlaceBid(ctx, Bidder{Team: "XYZ"})
	assert.Equal(t, ErrCodeUnknownTeam, CodeOf(err))

	// Paused auction.
	require.NoError(t, eng.Pause(ctx))
	_, err = eng.PlaceBid(ctx, Bidder{Team: "CSK"})
	assert.Equal(t, ErrCodePaused, CodeOf(err))
	require.NoError(t, eng.Resume(ctx))

	_, err = eng.PlaceBid(ctx, Bidder{Team: "CSK"})
	require.NoError(t, err)
}

func TestPlaceBid_PurseGate(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Pricey Name", 2_000_000)

	require.NoError(t, eng.SetPurse(ctx, "MI", 1_000_000))
	_, err := eng.PlaceBid(ctx, Bidder{Team: "MI"})
	assert.Equal(t, ErrCodeLowPurse, CodeOf(err))
}

func TestPlaceBid_OverseasCap(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)

	// Fill RCB's overseas slots.
	for i := 0; i < DefaultRules().OverseasCap; i++ {
		err := db.FinalizeSale(ctx, overseasName(i), "RCB", 1_000_000, 1, true)
		require.NoError(t, err)
	}

	addPoolPlayer(t, db, "marquee", "Import Name", 2_000_000, true)
	require.NoError(t, eng.Start(ctx))
	_, err := eng.SelectNextPlayer(ctx)
	require.NoError(t, err)

	_, err = eng.PlaceBid(ctx, Bidder{Team: "RCB"})
	assert.Equal(t, ErrCodeOverseasFull, CodeOf(err))

	// Domestic teams are unaffected.
	_, err = eng.PlaceBid(ctx, Bidder{Team: "CSK"})
	require.NoError(t, err)
}

func overseasName(i int) string {
	return string(rune('A'+i)) + " Overseas"
}

func TestPlaceBid_SquadCap(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenStore(t)
	testutil.SeedTeams(t, db, 1_000_000_000, "CSK", "MI")

	rules := DefaultRules()
	rules.SquadCap = 1
	eng, err := New(ctx, db, rules)
	require.NoError(t, err)

	require.NoError(t, db.FinalizeSale(ctx, "Only Slot", "MI", 1_000_000, 1, false))

	addPoolPlayer(t, db, "marquee", "One Too Many", 2_000_000, false)
	require.NoError(t, eng.Start(ctx))
	_, err = eng.SelectNextPlayer(ctx)
	require.NoError(t, err)

	_, err = eng.PlaceBid(ctx, Bidder{Team: "MI"})
	assert.Equal(t, ErrCodeSquadFull, CodeOf(err))

	st := eng.State()
	assert.Empty(t, st.HighestBidder)

	_, err = eng.PlaceBid(ctx, Bidder{Team: "CSK"})
	require.NoError(t, err)
}

func TestPlaceBid_TriggersProxyRaise(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Proxy Target", 1_000_000)

	require.NoError(t, eng.SetAutoBid(ctx, "MI", 2_000_000, 9))

	res, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)

	// CSK's opening bid lands at base; MI's proxy answers one step up.
	assert.Equal(t, int64(1_000_000), res.HumanAmount)
	require.Len(t, res.ProxyBids, 1)
	assert.Equal(t, ProxyBid{Team: "MI", Amount: 1_500_000}, res.ProxyBids[0])
	assert.Equal(t, "MI", res.Team)
	assert.Equal(t, int64(1_500_000), res.Amount)

	// The proxy bid is in the ledger as a system bid.
	bids, err := db.BidsForPlayer(ctx, "Proxy Target")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.True(t, bids[1].IsAutoBid)
	assert.Equal(t, "AUTO-BID", bids[1].UserName)
}

func TestProxyResolution_SecondPriceOutcome(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Dueled Name", 1_000_000)

	// Two proxies duel; the higher max wins at one step past the other's
	// ceiling, never at its own.
	require.NoError(t, eng.SetAutoBid(ctx, "MI", 5_000_000, 9))
	require.NoError(t, eng.SetAutoBid(ctx, "RCB", 3_000_000, 8))

	res, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, "MI", res.Team)
	assert.Equal(t, int64(3_500_000), res.Amount)
}

func TestProxyResolution_TieBreaksLexically(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Tied Name", 1_000_000)

	require.NoError(t, eng.SetAutoBid(ctx, "RCB", 2_000_000, 8))
	require.NoError(t, eng.SetAutoBid(ctx, "MI", 2_000_000, 9))

	res, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)

	// Equal maximums: MI answers first on team code, RCB replies at the
	// shared ceiling, and neither can go further.
	require.NotEmpty(t, res.ProxyBids)
	assert.Equal(t, ProxyBid{Team: "MI", Amount: 1_500_000}, res.ProxyBids[0])
	assert.Equal(t, "RCB", res.Team)
	assert.Equal(t, int64(2_000_000), res.Amount)
}

func TestProxyResolution_NeverExceedsWinnerMax(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Capped Name", 1_000_000)

	require.NoError(t, eng.SetAutoBid(ctx, "MI", 4_000_000, 9))

	res, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)
	for _, p := range res.ProxyBids {
		assert.LessOrEqual(t, p.Amount, int64(4_000_000))
	}

	// A human outbidding past the max silences the proxy.
	res, err = eng.PlaceBid(ctx, Bidder{Team: "RCB", UserID: 2})
	require.NoError(t, err)
	for res.Amount < 4_000_000 {
		team := "CSK"
		if res.Team == "CSK" {
			team = "RCB"
		}
		res, err = eng.PlaceBid(ctx, Bidder{Team: team})
		require.NoError(t, err)
	}
	assert.NotEqual(t, "MI", eng.State().HighestBidder)
}

func TestSetAutoBid_Validation(t *testing.T) {
	ctx := context.Background()
	eng, db := newTestEngine(t)
	startWithPlayer(t, eng, db, "Guarded Name", 2_000_000)

	assert.Equal(t, ErrCodeBadAmount, CodeOf(eng.SetAutoBid(ctx, "MI", 0, 9)))
	assert.Equal(t, ErrCodeLowPurse, CodeOf(eng.SetAutoBid(ctx, "MI", 2_000_000_000, 9)))
	assert.Equal(t, ErrCodeUnknownTeam, CodeOf(eng.SetAutoBid(ctx, "XYZ", 1_000_000, 9)))

	_, err := eng.PlaceBid(ctx, Bidder{Team: "CSK", UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, ErrCodeBadAmount, CodeOf(eng.SetAutoBid(ctx, "MI", 1_000_000, 9)))
}
