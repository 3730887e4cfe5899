package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TeamSeed is the initial configuration for one team.
type TeamSeed struct {
	Code  string
	Purse int64
}

// InitTeams seeds any teams not yet present. Both the working purse and
// the original purse (used by resets) start at the seed amount. Teams
// that already exist keep their live purse, so re-running at startup is
// safe mid-auction.
func (s *Store) InitTeams(ctx context.Context, teams []TeamSeed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init teams: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, t := range teams {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO teams (team_code, purse, original_purse)
			VALUES (?, ?, ?)
		`, t.Code, t.Purse, t.Purse)
		if err != nil {
			return fmt.Errorf("init teams: insert %s: %w", t.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init teams: commit: %w", err)
	}
	return nil
}

// Teams returns all teams mapped to their current purse.
func (s *Store) Teams(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT team_code, purse FROM teams ORDER BY team_code")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	teams := map[string]int64{}
	for rows.Next() {
		var code string
		var purse int64
		if err := rows.Scan(&code, &purse); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams[code] = purse
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, nil
}

// TeamPurse returns the current purse for a team.
// Returns ErrNotFound if the team code is unknown.
func (s *Store) TeamPurse(ctx context.Context, code string) (int64, error) {
	var purse int64
	err := s.db.QueryRowContext(ctx,
		"SELECT purse FROM teams WHERE team_code = ?", code).Scan(&purse)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query purse: %w", err)
	}
	return purse, nil
}

// SetPurse overwrites a team's purse (admin override).
// Returns ErrNotFound if the team code is unknown.
func (s *Store) SetPurse(ctx context.Context, code string, amount int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE teams SET purse = ? WHERE team_code = ?", amount, code)
	if err != nil {
		return fmt.Errorf("set purse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set purse: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductPurse atomically deducts amount from a team's purse.
// The check and the deduction are a single conditional UPDATE so a purse
// can never go negative even outside the engine lock.
// Returns ErrInsufficientFunds when the purse cannot cover the amount.
func (s *Store) DeductPurse(ctx context.Context, code string, amount int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET purse = purse - ?
		WHERE team_code = ? AND purse >= ?
	`, amount, code, amount)
	if err != nil {
		return fmt.Errorf("deduct purse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deduct purse: %w", err)
	}
	if n == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

// CreditPurse adds amount to a team's purse.
// Returns ErrNotFound if the team code is unknown.
func (s *Store) CreditPurse(ctx context.Context, code string, amount int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE teams SET purse = purse + ? WHERE team_code = ?", amount, code)
	if err != nil {
		return fmt.Errorf("credit purse: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit purse: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetTeams restores every team's purse to its original value.
func (s *Store) ResetTeams(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE teams SET purse = original_purse"); err != nil {
		return fmt.Errorf("reset teams: %w", err)
	}
	return nil
}
