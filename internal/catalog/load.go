package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// LoadResult summarizes one catalog import.
type LoadResult struct {
	Players int
	Lists   []string
}

// LoadFile imports a catalog CSV file into the pool.
func LoadFile(ctx context.Context, db *store.Store, path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(ctx, db, f)
}

// Load imports parsed catalog rows into the pool lists, creating lists
// on first sight and preserving the file's set order.
func Load(ctx context.Context, db *store.Store, r io.Reader) (LoadResult, error) {
	players, err := Parse(r)
	if err != nil {
		return LoadResult{}, err
	}

	res := LoadResult{}
	seen := make(map[string]bool)
	for _, p := range players {
		set := p.Set
		if set == "" {
			set = "unsorted"
		}
		if !seen[set] {
			if _, err := db.CreateList(ctx, set); err != nil {
				return LoadResult{}, fmt.Errorf("catalog: create list %q: %w", set, err)
			}
			seen[set] = true
			res.Lists = append(res.Lists, set)
		}
		if err := db.AddPoolPlayer(ctx, set, p.Name, p.BasePrice, p.Overseas); err != nil {
			return LoadResult{}, fmt.Errorf("catalog: add %q: %w", p.Name, err)
		}
		res.Players++
	}
	return res, nil
}
