package report

import (
	"bytes"
	"io"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// fixtureSnapshot is a small mid-auction state covering every renderer
// branch: a team with a mixed squad, an empty team, a sold and an
// unsold disposition.
func fixtureSnapshot() Snapshot {
	return Snapshot{
		Teams: []TeamLine{
			{
				Code:      "CSK",
				Purse:     895_000_000,
				Spent:     305_000_000,
				SquadSize: 2,
				Overseas:  1,
				Squad: []store.SquadPlayer{
					{Team: "CSK", Name: "MS Dhoni", Price: 40_000_000,
						Acquisition: store.AcquiredRetained},
					{Team: "CSK", Name: "Sam Curran", Price: 265_000_000,
						Overseas: true, Acquisition: store.AcquiredBought},
				},
			},
			{Code: "MI", Purse: 1_200_000_000},
		},
		Sales: []store.SaleRecord{
			{Player: "Sam Curran", Team: "CSK", Price: 265_000_000,
				TotalBids: 12, Status: store.SaleSold},
			{Player: "Unsold Guy", Price: 2_000_000, Status: store.SaleUnsold},
		},
	}
}

func assertRendered(t *testing.T, name string, render func(io.Writer, Snapshot) error) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(&buf, fixtureSnapshot()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())
}

func TestWriteStandings(t *testing.T) {
	assertRendered(t, "standings", WriteStandings)
}

func TestWriteSquads(t *testing.T) {
	assertRendered(t, "squads", WriteSquads)
}

func TestWriteSales(t *testing.T) {
	assertRendered(t, "sales", WriteSales)
}

func TestExportCSV(t *testing.T) {
	assertRendered(t, "export", ExportCSV)
}

func TestMoney(t *testing.T) {
	require.Equal(t, "12.50 Cr", money(125_000_000))
	require.Equal(t, "0.20 Cr", money(2_000_000))
	require.Equal(t, "0.00 Cr", money(0))
}
