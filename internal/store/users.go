package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AssignUserTeam maps a chat user to a team, replacing any prior mapping.
func (s *Store) AssignUserTeam(ctx context.Context, userID int64, team, userName string) error {
	var name any
	if userName != "" {
		name = userName
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_teams (user_id, team_code, user_name)
		VALUES (?, ?, ?)
	`, userID, team, name)
	if err != nil {
		return fmt.Errorf("assign user team: %w", err)
	}
	return nil
}

// UserTeam returns the team a user is assigned to.
// Returns ErrNotFound when the user has no assignment.
func (s *Store) UserTeam(ctx context.Context, userID int64) (string, error) {
	var team string
	err := s.db.QueryRowContext(ctx,
		"SELECT team_code FROM user_teams WHERE user_id = ?", userID).Scan(&team)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query user team: %w", err)
	}
	return team, nil
}

// AllUserTeams returns every user-to-team assignment.
func (s *Store) AllUserTeams(ctx context.Context) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id, team_code FROM user_teams")
	if err != nil {
		return nil, fmt.Errorf("query user teams: %w", err)
	}
	defer rows.Close()

	users := map[int64]string{}
	for rows.Next() {
		var id int64
		var team string
		if err := rows.Scan(&id, &team); err != nil {
			return nil, fmt.Errorf("scan user team: %w", err)
		}
		users[id] = team
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user teams: %w", err)
	}
	return users, nil
}

// RemoveUserTeam deletes a user's assignment.
// Returns ErrNotFound when none existed.
func (s *Store) RemoveUserTeam(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM user_teams WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("remove user team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove user team: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
