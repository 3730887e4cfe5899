package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_OpensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	var count int
	if err := s2.db.QueryRow("SELECT COUNT(*) FROM auction_state").Scan(&count); err != nil {
		t.Errorf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("auction_state rows = %d, want exactly 1", count)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
	}
	for pragma, want := range checks {
		if err := s.verifyPragma(pragma, want); err != nil {
			t.Errorf("verifyPragma(%s): %v", pragma, err)
		}
	}
}

func TestFullReset(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedTestTeams(t, s)

	if err := s.DeductPurse(ctx, "CSK", 400_000_000); err != nil {
		t.Fatalf("DeductPurse() failed: %v", err)
	}
	addTestPlayer(t, s, "CSK", "Ravindra Jadeja", 400_000_000)

	if err := s.FullReset(ctx); err != nil {
		t.Fatalf("FullReset() failed: %v", err)
	}

	purse, err := s.TeamPurse(ctx, "CSK")
	if err != nil {
		t.Fatalf("TeamPurse() failed: %v", err)
	}
	if purse != 1_000_000_000 {
		t.Errorf("purse after reset = %d, want original 1000000000", purse)
	}

	squads, err := s.AllSquads(ctx)
	if err != nil {
		t.Fatalf("AllSquads() failed: %v", err)
	}
	if len(squads["CSK"]) != 0 {
		t.Errorf("squad not cleared: %v", squads["CSK"])
	}
}
