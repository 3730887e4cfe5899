package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// money formats a smallest-unit amount in crore for display, keeping
// two decimals ("12.50 Cr").
func money(amount int64) string {
	return fmt.Sprintf("%.2f Cr", float64(amount)/1e7)
}

// WriteStandings renders the team standings table.
func WriteStandings(w io.Writer, snap Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tPURSE\tSPENT\tSQUAD\tOVERSEAS")
	for _, t := range snap.Teams {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			t.Code, money(t.Purse), money(t.Spent), t.SquadSize, t.Overseas)
	}
	return tw.Flush()
}

// WriteSquads renders every team's roster with acquisition detail.
func WriteSquads(w io.Writer, snap Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range snap.Teams {
		fmt.Fprintf(tw, "%s\t(%d players, %s left)\n", t.Code, t.SquadSize, money(t.Purse))
		if len(t.Squad) == 0 {
			fmt.Fprintln(tw, "\t-")
			continue
		}
		for _, p := range t.Squad {
			mark := ""
			if p.Overseas {
				mark = " *"
			}
			fmt.Fprintf(tw, "\t%s%s\t%s\t%s\n", p.Name, mark, money(p.Price), p.Acquisition)
		}
	}
	return tw.Flush()
}

// WriteSales renders the disposition log, newest first.
func WriteSales(w io.Writer, snap Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tSTATUS\tTEAM\tPRICE\tBIDS")
	for _, s := range snap.Sales {
		team := s.Team
		if team == "" {
			team = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			s.Player, s.Status, team, money(s.Price), s.TotalBids)
	}
	return tw.Flush()
}

// ExportCSV writes the full roster state as CSV, one row per rostered
// player, for spreadsheet import.
func ExportCSV(w io.Writer, snap Snapshot) error {
	cw := csv.NewWriter(w)
	header := []string{"team", "player", "price", "overseas", "acquisition", "source_team"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range snap.Teams {
		for _, p := range t.Squad {
			row := []string{
				t.Code,
				p.Name,
				strconv.FormatInt(p.Price, 10),
				strconv.FormatBool(p.Overseas),
				string(p.Acquisition),
				p.SourceTeam,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
