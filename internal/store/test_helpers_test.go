package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a fresh store under the test temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedTestTeams initializes two teams with 100 crore each.
func seedTestTeams(t *testing.T, s *Store) {
	t.Helper()
	err := s.InitTeams(context.Background(), []TeamSeed{
		{Code: "CSK", Purse: 1_000_000_000},
		{Code: "MI", Purse: 1_000_000_000},
	})
	if err != nil {
		t.Fatalf("InitTeams() failed: %v", err)
	}
}

// addTestPlayer puts one player on a roster as a buy.
func addTestPlayer(t *testing.T, s *Store, team, name string, price int64) {
	t.Helper()
	err := s.AddToSquad(context.Background(), SquadPlayer{
		Team:        team,
		Name:        name,
		Price:       price,
		Acquisition: AcquiredBought,
	})
	if err != nil {
		t.Fatalf("AddToSquad(%s) failed: %v", name, err)
	}
}
