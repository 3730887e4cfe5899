package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/engine"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/testutil"
)

const minimalYAML = `
teams:
  - code: CSK
    name: Chennai Super Kings
    purse: 1200000000
  - code: MI
    purse: 1200000000
`

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "auction.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	require.Len(t, cfg.Teams, 2)
	assert.Equal(t, "Chennai Super Kings", cfg.Teams[0].Name)

	seeds := cfg.Seeds()
	require.Len(t, seeds, 2)
	assert.Equal(t, store.TeamSeed{Code: "CSK", Purse: 1_200_000_000}, seeds[0])
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no teams", "teams: []"},
		{"empty code", "teams:\n  - code: \"\"\n    purse: 100"},
		{"duplicate code", "teams:\n  - {code: CSK, purse: 100}\n  - {code: CSK, purse: 100}"},
		{"zero purse", "teams:\n  - {code: CSK, purse: 0}"},
		{"retained unknown team", minimalYAML + "retained:\n  - {team: RCB, player: Virat Kohli, price: 100}"},
		{"retained empty player", minimalYAML + "retained:\n  - {team: CSK, player: \"\", price: 100}"},
		{"retained zero price", minimalYAML + "retained:\n  - {team: CSK, player: MS Dhoni, price: 0}"},
		{"increment zero step", minimalYAML + "rules:\n  increments:\n    - {below: 100, step: 0}"},
		{"increments out of order", minimalYAML + "rules:\n  increments:\n    - {below: 200, step: 10}\n    - {below: 100, step: 20}"},
		{"not yaml", "{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEngineRules_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultRules(), cfg.EngineRules())
}

func TestEngineRules_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + `
rules:
  squad_cap: 18
  overseas_cap: 6
  default_countdown: 60
  increments:
    - {below: 5000000, step: 250000}
  top_step: 1000000
`))
	require.NoError(t, err)

	r := cfg.EngineRules()
	assert.Equal(t, 18, r.SquadCap)
	assert.Equal(t, 6, r.OverseasCap)
	assert.Equal(t, 60, r.DefaultCountdown)
	assert.Equal(t, []engine.IncrementStep{{Below: 5_000_000, Step: 250_000}}, r.Increments)
	assert.Equal(t, int64(1_000_000), r.TopStep)

	// Untouched fields keep their defaults.
	assert.Equal(t, engine.DefaultRules().DefaultBasePrice, r.DefaultBasePrice)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auction.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	t.Setenv("AUCTION_DB", "/var/lib/auction.db")
	t.Setenv("AUCTION_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/auction.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSeedRetained(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenStore(t)
	testutil.SeedTeams(t, db, 1_200_000_000, "CSK", "MI")

	cfg, err := Parse([]byte(minimalYAML + `
retained:
  - {team: CSK, player: MS Dhoni, price: 40000000}
  - {team: MI, player: Jasprit Bumrah, price: 180000000, overseas: false}
`))
	require.NoError(t, err)

	require.NoError(t, cfg.SeedRetained(ctx, db))

	owner, err := db.RosterOwner(ctx, "MS Dhoni")
	require.NoError(t, err)
	assert.Equal(t, "CSK", owner.Team)
	assert.Equal(t, store.AcquiredRetained, owner.Acquisition)

	purse, err := db.TeamPurse(ctx, "CSK")
	require.NoError(t, err)
	assert.Equal(t, int64(1_160_000_000), purse)

	// Re-running must not double-charge.
	require.NoError(t, cfg.SeedRetained(ctx, db))
	purse, err = db.TeamPurse(ctx, "CSK")
	require.NoError(t, err)
	assert.Equal(t, int64(1_160_000_000), purse)
}
