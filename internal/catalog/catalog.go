// Package catalog parses player catalog CSV files and loads them into
// the pool lists.
//
// The expected layout is one player per row with at least the columns
// "First Name", "Surname", "Set", "Base Price" and "Overseas". Base
// prices are given in lakh (hundred-thousands) and converted to the
// smallest currency unit on parse. Player names are Unicode-normalized
// so the same player spelled with combining characters in one sheet and
// precomposed characters in another still collides on load.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// lakh is the currency multiplier for the "Base Price" column.
const lakh = 100_000

// Player is one parsed catalog row.
type Player struct {
	Name      string
	Set       string
	BasePrice int64
	Overseas  bool
}

// columns maps the header names we require to their index in the file.
type columns struct {
	first    int
	surname  int
	set      int
	base     int
	overseas int
}

// Parse reads a catalog CSV. Rows with an empty name are skipped; a
// repeated player name or any other malformed row aborts the parse with
// its line number.
func Parse(r io.Reader) ([]Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var players []Player
	seen := make(map[string]int)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: %w", line, err)
		}

		name := cleanName(field(record, cols.first) + " " + field(record, cols.surname))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("catalog: line %d: duplicate player %q (first seen on line %d)", line, name, prev)
		}
		seen[key] = line

		base, err := parseBasePrice(field(record, cols.base))
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: %w", line, err)
		}

		players = append(players, Player{
			Name:      name,
			Set:       strings.TrimSpace(field(record, cols.set)),
			BasePrice: base,
			Overseas:  parseOverseas(field(record, cols.overseas)),
		})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("catalog: no players found")
	}
	return players, nil
}

func mapColumns(header []string) (columns, error) {
	cols := columns{first: -1, surname: -1, set: -1, base: -1, overseas: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "first name":
			cols.first = i
		case "surname", "last name":
			cols.surname = i
		case "set", "list":
			cols.set = i
		case "base price":
			cols.base = i
		case "overseas":
			cols.overseas = i
		}
	}
	for name, idx := range map[string]int{
		"First Name": cols.first,
		"Set":        cols.set,
		"Base Price": cols.base,
	} {
		if idx < 0 {
			return columns{}, fmt.Errorf("catalog: missing column %q", name)
		}
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// cleanName collapses interior whitespace and applies NFC so spelling
// variants of the same name compare equal downstream.
func cleanName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// parseBasePrice accepts a lakh figure, bare ("200") or decorated
// ("200 Lakh", "2,00"). Empty means no base price; the engine default
// applies.
func parseBasePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.ToLower(s), "lakh")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad base price %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative base price %q", s)
	}
	return int64(v * lakh), nil
}

func parseOverseas(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "overseas":
		return true
	}
	return false
}
