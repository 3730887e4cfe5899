// Package report builds human-readable and CSV views of the auction:
// team purse standings, full rosters, and the disposition log. It also
// provides the file-writing Refresher the engine calls after each sale.
package report

import (
	"context"
	"sort"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// TeamLine is one row of the standings table.
type TeamLine struct {
	Code      string
	Purse     int64
	Spent     int64
	SquadSize int
	Overseas  int
	Squad     []store.SquadPlayer
}

// Snapshot is everything the renderers need, pulled in one pass.
type Snapshot struct {
	State store.StateRow
	Teams []TeamLine
	Sales []store.SaleRecord
}

// BuildSnapshot assembles the current standings from the store. Teams
// are ordered by code for stable output.
func BuildSnapshot(ctx context.Context, db *store.Store) (Snapshot, error) {
	state, err := db.AuctionState(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	purses, err := db.Teams(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	squads, err := db.AllSquads(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	sales, err := db.Sales(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	codes := make([]string, 0, len(purses))
	for code := range purses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	snap := Snapshot{State: state, Sales: sales}
	for _, code := range codes {
		line := TeamLine{Code: code, Purse: purses[code], Squad: squads[code]}
		for _, p := range line.Squad {
			line.SquadSize++
			line.Spent += p.Price
			if p.Overseas {
				line.Overseas++
			}
		}
		snap.Teams = append(snap.Teams, line)
	}
	return snap, nil
}
