package store

import (
	"context"
	"errors"
	"testing"
)

func TestAddToSquad_DuplicateCaseless(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "MS Dhoni", 120_000_000)

	// Same player, different case, different team: still one owner.
	err := s.AddToSquad(ctx, SquadPlayer{
		Team:        "MI",
		Name:        "ms dhoni",
		Price:       50_000_000,
		Acquisition: AcquiredBought,
	})
	if !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("AddToSquad(duplicate) = %v, want ErrDuplicatePlayer", err)
	}
}

func TestRosterOwner_Caseless(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "MI", "Jasprit Bumrah", 180_000_000)

	owner, err := s.RosterOwner(ctx, "JASPRIT BUMRAH")
	if err != nil {
		t.Fatalf("RosterOwner() failed: %v", err)
	}
	if owner.Team != "MI" {
		t.Errorf("owner = %s, want MI", owner.Team)
	}
	if owner.Name != "Jasprit Bumrah" {
		t.Errorf("stored name = %q, want original casing", owner.Name)
	}
}

func TestSquadCounts(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Ruturaj Gaikwad", 60_000_000)

	err := s.AddToSquad(ctx, SquadPlayer{
		Team:        "CSK",
		Name:        "Devon Conway",
		Price:       50_000_000,
		Overseas:    true,
		Acquisition: AcquiredBought,
	})
	if err != nil {
		t.Fatalf("AddToSquad() failed: %v", err)
	}

	total, overseas, err := s.SquadCounts(ctx, "CSK")
	if err != nil {
		t.Fatalf("SquadCounts() failed: %v", err)
	}
	if total != 2 || overseas != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", total, overseas)
	}
}

func TestAllSquads_IncludesEmptyRosters(t *testing.T) {
	s := createTestStore(t)
	seedTestTeams(t, s)
	addTestPlayer(t, s, "CSK", "Shivam Dube", 40_000_000)

	squads, err := s.AllSquads(context.Background())
	if err != nil {
		t.Fatalf("AllSquads() failed: %v", err)
	}
	if _, ok := squads["MI"]; !ok {
		t.Error("empty roster for MI missing from AllSquads()")
	}
	if len(squads["CSK"]) != 1 {
		t.Errorf("CSK roster = %d players, want 1", len(squads["CSK"]))
	}
}
