package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// BidRecord is one append-only ledger entry.
// Ordering key is (At, ID): wall-clock first, insertion sequence as the
// tie-break.
type BidRecord struct {
	ID            int64
	Player        string
	Team          string
	UserID        int64
	UserName      string
	Amount        int64
	IsAutoBid     bool
	InteractionID string
	At            time.Time
}

// RecordBid appends a ledger entry.
func (s *Store) RecordBid(ctx context.Context, b BidRecord) error {
	var userName, interaction any
	if b.UserName != "" {
		userName = b.UserName
	}
	if b.InteractionID != "" {
		interaction = b.InteractionID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bid_history
		(player_name, team_code, user_id, user_name, amount, is_auto_bid, interaction_id, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.Player, b.Team, b.UserID, userName, b.Amount, boolToInt(b.IsAutoBid), interaction, b.At.Unix())
	if err != nil {
		return fmt.Errorf("record bid: %w", err)
	}
	return nil
}

// BidsForPlayer returns the full ledger for a player in bid order.
func (s *Store) BidsForPlayer(ctx context.Context, player string) ([]BidRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, team_code, user_id, user_name, amount, is_auto_bid, interaction_id, ts
		FROM bid_history
		WHERE player_name = ? COLLATE NOCASE
		ORDER BY ts ASC, id ASC
	`, player)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()
	return scanBids(rows)
}

// HighestBid returns the top ledger entry for a player: the greatest
// amount, latest entry winning amount ties. This is the authoritative
// "who currently leads" source used by finalization and recovery.
// Returns ErrNotFound when the ledger has no entry for the player.
func (s *Store) HighestBid(ctx context.Context, player string) (BidRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player_name, team_code, user_id, user_name, amount, is_auto_bid, interaction_id, ts
		FROM bid_history
		WHERE player_name = ? COLLATE NOCASE
		ORDER BY amount DESC, ts DESC, id DESC
		LIMIT 1
	`, player)
	return scanOneBid(row)
}

// LatestBid returns the most recent ledger entry for a player.
// Returns ErrNotFound when the ledger has no entry for the player.
func (s *Store) LatestBid(ctx context.Context, player string) (BidRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player_name, team_code, user_id, user_name, amount, is_auto_bid, interaction_id, ts
		FROM bid_history
		WHERE player_name = ? COLLATE NOCASE
		ORDER BY ts DESC, id DESC
		LIMIT 1
	`, player)
	return scanOneBid(row)
}

// DeleteBid removes a single ledger entry by id. Used only by undo.
func (s *Store) DeleteBid(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bid_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentBids returns the most recent entries across all players,
// newest first.
func (s *Store) RecentBids(ctx context.Context, limit int) ([]BidRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, team_code, user_id, user_name, amount, is_auto_bid, interaction_id, ts
		FROM bid_history
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent bids: %w", err)
	}
	defer rows.Close()
	return scanBids(rows)
}

// CountBids returns the number of ledger entries for a player.
func (s *Store) CountBids(ctx context.Context, player string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bid_history WHERE player_name = ? COLLATE NOCASE", player).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return count, nil
}

// ClearBids deletes the entire ledger.
func (s *Store) ClearBids(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bid_history"); err != nil {
		return fmt.Errorf("clear bids: %w", err)
	}
	return nil
}

func scanOneBid(row rowScanner) (BidRecord, error) {
	b, err := scanBidRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BidRecord{}, ErrNotFound
	}
	if err != nil {
		return BidRecord{}, fmt.Errorf("scan bid: %w", err)
	}
	return b, nil
}

func scanBidRow(row rowScanner) (BidRecord, error) {
	var b BidRecord
	var userName, interaction sql.NullString
	var isAuto int
	var ts int64
	err := row.Scan(&b.ID, &b.Player, &b.Team, &b.UserID, &userName,
		&b.Amount, &isAuto, &interaction, &ts)
	if err != nil {
		return BidRecord{}, err
	}
	b.UserName = userName.String
	b.InteractionID = interaction.String
	b.IsAutoBid = isAuto != 0
	b.At = time.Unix(ts, 0).UTC()
	return b, nil
}

func scanBids(rows *sql.Rows) ([]BidRecord, error) {
	var bids []BidRecord
	for rows.Next() {
		b, err := scanBidRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bids: %w", err)
	}
	return bids, nil
}
