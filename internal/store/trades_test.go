package store

import (
	"context"
	"errors"
	"testing"
)

func TestApplyCashTrade(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Shardul Thakur", 80_000_000)

	moved, err := s.ApplyCashTrade(ctx, "trade-1", "Shardul Thakur", "CSK", "MI", 100_000_000)
	if err != nil {
		t.Fatalf("ApplyCashTrade() failed: %v", err)
	}
	if moved.Team != "MI" || moved.Price != 100_000_000 || moved.Acquisition != AcquiredTraded {
		t.Errorf("moved = %+v", moved)
	}
	if moved.SourceTeam != "CSK" {
		t.Errorf("source team = %q, want CSK", moved.SourceTeam)
	}

	// Buyer debited, seller credited.
	csk, _ := s.TeamPurse(ctx, "CSK")
	mi, _ := s.TeamPurse(ctx, "MI")
	if csk != 1_100_000_000 || mi != 900_000_000 {
		t.Errorf("purses = (CSK %d, MI %d)", csk, mi)
	}

	trades, err := s.Trades(ctx)
	if err != nil {
		t.Fatalf("Trades() failed: %v", err)
	}
	if len(trades) != 1 || trades[0].Type != TradeCash {
		t.Errorf("trades = %+v", trades)
	}
}

func TestApplyCashTrade_BuyerCannotPay(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Moeen Ali", 80_000_000)

	_, err := s.ApplyCashTrade(ctx, "trade-1", "Moeen Ali", "CSK", "MI", 2_000_000_000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("ApplyCashTrade() = %v, want ErrInsufficientFunds", err)
	}

	// Nothing moved.
	owner, _ := s.RosterOwner(ctx, "Moeen Ali")
	if owner.Team != "CSK" {
		t.Errorf("owner = %s, want CSK", owner.Team)
	}
}

func TestApplySwap_PriceDifferenceSettlement(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Expensive Star", 180_000_000)
	addTestPlayer(t, s, "MI", "Value Pick", 48_000_000)

	movedA, movedB, err := s.ApplySwap(ctx, "trade-2", "Expensive Star", "Value Pick", 0, "")
	if err != nil {
		t.Fatalf("ApplySwap() failed: %v", err)
	}

	// CSK sheds a 180M contract and takes on a 48M one: +132M.
	csk, _ := s.TeamPurse(ctx, "CSK")
	mi, _ := s.TeamPurse(ctx, "MI")
	if csk != 1_132_000_000 {
		t.Errorf("CSK purse = %d, want 1132000000", csk)
	}
	if mi != 868_000_000 {
		t.Errorf("MI purse = %d, want 868000000", mi)
	}

	// Returned rows are the pre-move state.
	if movedA.Team != "CSK" || movedA.Price != 180_000_000 {
		t.Errorf("movedA = %+v", movedA)
	}
	if movedB.Team != "MI" || movedB.Price != 48_000_000 {
		t.Errorf("movedB = %+v", movedB)
	}

	// Players keep their original sale prices on the new rosters.
	ownerA, _ := s.RosterOwner(ctx, "Expensive Star")
	if ownerA.Team != "MI" || ownerA.Price != 180_000_000 {
		t.Errorf("new owner of Expensive Star = %+v", ownerA)
	}
	ownerB, _ := s.RosterOwner(ctx, "Value Pick")
	if ownerB.Team != "CSK" || ownerB.Price != 48_000_000 {
		t.Errorf("new owner of Value Pick = %+v", ownerB)
	}

	// Both halves share one trade id.
	trades, _ := s.Trades(ctx)
	if len(trades) != 2 || trades[0].TradeID != trades[1].TradeID {
		t.Errorf("trades = %+v", trades)
	}
}

func TestApplySwap_WithCompensation(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Player One", 100_000_000)
	addTestPlayer(t, s, "MI", "Player Two", 100_000_000)

	// Equal prices, MI pays 50M on top.
	_, _, err := s.ApplySwap(ctx, "trade-3", "Player One", "Player Two", 50_000_000, "MI")
	if err != nil {
		t.Fatalf("ApplySwap() failed: %v", err)
	}

	csk, _ := s.TeamPurse(ctx, "CSK")
	mi, _ := s.TeamPurse(ctx, "MI")
	if csk != 1_050_000_000 || mi != 950_000_000 {
		t.Errorf("purses = (CSK %d, MI %d)", csk, mi)
	}
}

func TestApplySwap_DebitSideCannotPay(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Cheap Pick", 10_000_000)
	addTestPlayer(t, s, "MI", "Costly Pick", 900_000_000)

	// CSK would owe 890M; drain their purse first so the swap must fail.
	if err := s.DeductPurse(ctx, "CSK", 950_000_000); err != nil {
		t.Fatalf("DeductPurse() failed: %v", err)
	}

	_, _, err := s.ApplySwap(ctx, "trade-4", "Cheap Pick", "Costly Pick", 0, "")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("ApplySwap() = %v, want ErrInsufficientFunds", err)
	}

	// Rosters unchanged.
	owner, _ := s.RosterOwner(ctx, "Cheap Pick")
	if owner.Team != "CSK" {
		t.Errorf("owner = %s, want CSK", owner.Team)
	}
}
