package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestCreateList_CaselessDedupe(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	created, err := s.CreateList(ctx, "Marquee")
	if err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	if !created {
		t.Error("first CreateList() = false, want true")
	}

	created, err = s.CreateList(ctx, "MARQUEE")
	if err != nil {
		t.Fatalf("CreateList(dup) failed: %v", err)
	}
	if created {
		t.Error("duplicate CreateList() = true, want false")
	}

	order, err := s.ListOrder(ctx)
	if err != nil {
		t.Fatalf("ListOrder() failed: %v", err)
	}
	if len(order) != 1 {
		t.Errorf("order = %v, want one list", order)
	}
}

func TestListOrder_AppendsInCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for _, name := range []string{"Marquee", "Batters", "Bowlers"} {
		if _, err := s.CreateList(ctx, name); err != nil {
			t.Fatalf("CreateList(%s) failed: %v", name, err)
		}
	}

	order, err := s.ListOrder(ctx)
	if err != nil {
		t.Fatalf("ListOrder() failed: %v", err)
	}
	want := []string{"Marquee", "Batters", "Bowlers"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSetListOrder(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for _, name := range []string{"A", "B", "C"} {
		if _, err := s.CreateList(ctx, name); err != nil {
			t.Fatalf("CreateList(%s) failed: %v", name, err)
		}
	}
	want := []string{"C", "A", "B"}
	if err := s.SetListOrder(ctx, want); err != nil {
		t.Fatalf("SetListOrder() failed: %v", err)
	}
	order, _ := s.ListOrder(ctx)
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRandomUnresolved(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	if _, err := s.CreateList(ctx, "Marquee"); err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	if err := s.AddPoolPlayer(ctx, "Marquee", "Travis Head", 20_000_000, true); err != nil {
		t.Fatalf("AddPoolPlayer() failed: %v", err)
	}

	pick, err := s.RandomUnresolved(ctx, "Marquee")
	if err != nil {
		t.Fatalf("RandomUnresolved() failed: %v", err)
	}
	if pick.Name != "Travis Head" {
		t.Errorf("pick = %q", pick.Name)
	}

	if err := s.MarkAuctioned(ctx, pick.ID); err != nil {
		t.Fatalf("MarkAuctioned() failed: %v", err)
	}
	if _, err := s.RandomUnresolved(ctx, "Marquee"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RandomUnresolved(drained) = %v, want ErrNotFound", err)
	}

	count, err := s.AuctionedCount(ctx, "Marquee")
	if err != nil {
		t.Fatalf("AuctionedCount() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("AuctionedCount() = %d, want 1", count)
	}
}

func TestPoolEntry_Caseless(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	if _, err := s.CreateList(ctx, "Batters"); err != nil {
		t.Fatalf("CreateList() failed: %v", err)
	}
	if err := s.AddPoolPlayer(ctx, "Batters", "Shubman Gill", 20_000_000, false); err != nil {
		t.Fatalf("AddPoolPlayer() failed: %v", err)
	}

	entry, err := s.PoolEntry(ctx, "shubman gill")
	if err != nil {
		t.Fatalf("PoolEntry() failed: %v", err)
	}
	if entry.List != "Batters" || entry.BasePrice != 20_000_000 {
		t.Errorf("entry = %+v", entry)
	}
}
