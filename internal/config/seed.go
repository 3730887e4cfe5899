package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// SeedRetained places each retained player on their team's roster and
// deducts the retention price from the purse. Safe to re-run: players
// already rostered are skipped.
func (c *Config) SeedRetained(ctx context.Context, db *store.Store) error {
	for _, r := range c.Retained {
		err := db.AddToSquad(ctx, store.SquadPlayer{
			Team:        r.Team,
			Name:        r.Player,
			Price:       r.Price,
			Overseas:    r.Overseas,
			Acquisition: store.AcquiredRetained,
		})
		if errors.Is(err, store.ErrDuplicatePlayer) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed retained %q: %w", r.Player, err)
		}
		if err := db.DeductPurse(ctx, r.Team, r.Price); err != nil {
			return fmt.Errorf("seed retained %q: %w", r.Player, err)
		}
	}
	return nil
}
