package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// OpenStore opens a fresh SQLite store under the test's temp directory,
// closed automatically when the test finishes.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "auction.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return db
}

// SeedTeams initializes the given team codes with a shared purse.
func SeedTeams(t *testing.T, db *store.Store, purse int64, codes ...string) {
	t.Helper()
	seeds := make([]store.TeamSeed, 0, len(codes))
	for _, code := range codes {
		seeds = append(seeds, store.TeamSeed{Code: code, Purse: purse})
	}
	if err := db.InitTeams(context.Background(), seeds); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
}
