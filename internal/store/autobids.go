package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AutoBid is a team's standing proxy maximum. At most one per team.
type AutoBid struct {
	Team  string
	Max   int64
	SetBy int64
}

// SetAutoBid creates or replaces a team's proxy maximum.
func (s *Store) SetAutoBid(ctx context.Context, a AutoBid) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO auto_bids (team_code, max_amount, set_by_user_id, active)
		VALUES (?, ?, ?, 1)
	`, a.Team, a.Max, a.SetBy)
	if err != nil {
		return fmt.Errorf("set auto bid: %w", err)
	}
	return nil
}

// AutoBidFor returns a team's active proxy maximum.
// Returns ErrNotFound when the team has no active proxy bid.
func (s *Store) AutoBidFor(ctx context.Context, team string) (int64, error) {
	var max int64
	err := s.db.QueryRowContext(ctx,
		"SELECT max_amount FROM auto_bids WHERE team_code = ? AND active = 1", team).Scan(&max)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query auto bid: %w", err)
	}
	return max, nil
}

// ActiveAutoBids returns all active proxy bids ordered by team code.
// The deterministic order backs the lexical tie-break in proxy resolution.
func (s *Store) ActiveAutoBids(ctx context.Context) ([]AutoBid, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team_code, max_amount, set_by_user_id
		FROM auto_bids
		WHERE active = 1
		ORDER BY team_code ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query auto bids: %w", err)
	}
	defer rows.Close()

	var autos []AutoBid
	for rows.Next() {
		var a AutoBid
		if err := rows.Scan(&a.Team, &a.Max, &a.SetBy); err != nil {
			return nil, fmt.Errorf("scan auto bid: %w", err)
		}
		autos = append(autos, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auto bids: %w", err)
	}
	return autos, nil
}

// DeactivateAutoBid turns off a team's proxy bid without deleting the row.
func (s *Store) DeactivateAutoBid(ctx context.Context, team string) error {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE auto_bids SET active = 0 WHERE team_code = ?", team); err != nil {
		return fmt.Errorf("deactivate auto bid: %w", err)
	}
	return nil
}

// ClearAutoBids deletes all proxy bids. Called whenever the current
// player changes.
func (s *Store) ClearAutoBids(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM auto_bids"); err != nil {
		return fmt.Errorf("clear auto bids: %w", err)
	}
	return nil
}
