package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Acquisition describes how a player arrived on a roster.
type Acquisition string

const (
	AcquiredRetained Acquisition = "retained"
	AcquiredBought   Acquisition = "bought"
	AcquiredTraded   Acquisition = "traded"
)

// SquadPlayer is one roster row.
type SquadPlayer struct {
	Team        string
	Name        string
	Price       int64
	Overseas    bool
	Acquisition Acquisition
	SourceTeam  string // set for traded players
	BoughtAt    time.Time
}

// AddToSquad inserts a roster row. The caseless unique index on
// player_name enforces the single-owner invariant; a collision returns
// ErrDuplicatePlayer with nothing mutated.
func (s *Store) AddToSquad(ctx context.Context, p SquadPlayer) error {
	var source any
	if p.SourceTeam != "" {
		source = p.SourceTeam
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_squads (team_code, player_name, price, is_overseas, acquisition, source_team)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Team, p.Name, p.Price, boolToInt(p.Overseas), string(p.Acquisition), source)
	if isUniqueViolation(err) {
		return ErrDuplicatePlayer
	}
	if err != nil {
		return fmt.Errorf("add to squad: %w", err)
	}
	return nil
}

// SquadOf returns a team's roster in acquisition order.
func (s *Store) SquadOf(ctx context.Context, team string) ([]SquadPlayer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team_code, player_name, price, is_overseas, acquisition, source_team, bought_at
		FROM team_squads
		WHERE team_code = ?
		ORDER BY bought_at ASC, id ASC
	`, team)
	if err != nil {
		return nil, fmt.Errorf("query squad: %w", err)
	}
	defer rows.Close()
	return scanSquad(rows)
}

// AllSquads returns every team's roster, keyed by team code. Teams with
// empty rosters are present with an empty slice.
func (s *Store) AllSquads(ctx context.Context) (map[string][]SquadPlayer, error) {
	squads := map[string][]SquadPlayer{}

	teamRows, err := s.db.QueryContext(ctx, "SELECT team_code FROM teams")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var code string
		if err := teamRows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		squads[code] = []SquadPlayer{}
	}
	if err := teamRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT team_code, player_name, price, is_overseas, acquisition, source_team, bought_at
		FROM team_squads
		ORDER BY bought_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query squads: %w", err)
	}
	defer rows.Close()

	players, err := scanSquad(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		squads[p.Team] = append(squads[p.Team], p)
	}
	return squads, nil
}

// RosterOwner returns the roster row for a player name (caseless match).
// Returns ErrNotFound if the player is not on any roster.
func (s *Store) RosterOwner(ctx context.Context, player string) (SquadPlayer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT team_code, player_name, price, is_overseas, acquisition, source_team, bought_at
		FROM team_squads
		WHERE player_name = ? COLLATE NOCASE
	`, player)

	p, err := scanSquadRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SquadPlayer{}, ErrNotFound
	}
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("query roster owner: %w", err)
	}
	return p, nil
}

// SquadCounts returns a team's roster size and overseas-player count.
func (s *Store) SquadCounts(ctx context.Context, team string) (total, overseas int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(is_overseas), 0)
		FROM team_squads WHERE team_code = ?
	`, team).Scan(&total, &overseas)
	if err != nil {
		return 0, 0, fmt.Errorf("query squad counts: %w", err)
	}
	return total, overseas, nil
}

// RemoveFromSquad deletes a player's roster row (caseless match).
// Returns ErrNotFound if the row does not exist.
func (s *Store) RemoveFromSquad(ctx context.Context, team, player string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM team_squads
		WHERE team_code = ? AND player_name = ? COLLATE NOCASE
	`, team, player)
	if err != nil {
		return fmt.Errorf("remove from squad: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove from squad: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearSquads deletes all roster rows.
func (s *Store) ClearSquads(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM team_squads"); err != nil {
		return fmt.Errorf("clear squads: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSquadRow(row rowScanner) (SquadPlayer, error) {
	var p SquadPlayer
	var overseas int
	var acq string
	var source sql.NullString
	var boughtAt sql.NullTime
	err := row.Scan(&p.Team, &p.Name, &p.Price, &overseas, &acq, &source, &boughtAt)
	if err != nil {
		return SquadPlayer{}, err
	}
	p.Overseas = overseas != 0
	p.Acquisition = Acquisition(acq)
	p.SourceTeam = source.String
	p.BoughtAt = boughtAt.Time
	return p, nil
}

func scanSquad(rows *sql.Rows) ([]SquadPlayer, error) {
	var players []SquadPlayer
	for rows.Next() {
		p, err := scanSquadRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan squad row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate squad rows: %w", err)
	}
	return players, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
