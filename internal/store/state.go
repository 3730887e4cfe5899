package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StateRow mirrors the engine's mutable state. It is the sole source of
// truth read back on process restart.
type StateRow struct {
	Active           bool
	Paused           bool
	CurrentPlayer    string // empty when no player is open
	CurrentListIndex int
	BasePrice        int64
	CurrentBid       int64
	HighestBidder    string // empty when no leader
	CountdownSeconds int
	LastBidTime      time.Time
	StatsChannelID   int64
	StatsMessageID   int64
}

const resetStateSQL = `
	UPDATE auction_state SET
		active = 0,
		paused = 0,
		current_player = NULL,
		current_list_index = 0,
		base_price = 0,
		current_bid = 0,
		highest_bidder = NULL,
		last_bid_time = 0,
		stats_channel_id = 0,
		stats_message_id = 0
	WHERE id = 1
`

// AuctionState reads the single state row.
func (s *Store) AuctionState(ctx context.Context) (StateRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT active, paused, current_player, current_list_index,
		       base_price, current_bid, highest_bidder, countdown_seconds,
		       last_bid_time, stats_channel_id, stats_message_id
		FROM auction_state WHERE id = 1
	`)

	var st StateRow
	var active, paused int
	var player, bidder sql.NullString
	var lastBid int64
	err := row.Scan(&active, &paused, &player, &st.CurrentListIndex,
		&st.BasePrice, &st.CurrentBid, &bidder, &st.CountdownSeconds,
		&lastBid, &st.StatsChannelID, &st.StatsMessageID)
	if err != nil {
		return StateRow{}, fmt.Errorf("read auction state: %w", err)
	}
	st.Active = active != 0
	st.Paused = paused != 0
	st.CurrentPlayer = player.String
	st.HighestBidder = bidder.String
	if lastBid > 0 {
		st.LastBidTime = time.Unix(lastBid, 0).UTC()
	}
	return st, nil
}

// SaveAuctionState overwrites the single state row.
func (s *Store) SaveAuctionState(ctx context.Context, st StateRow) error {
	var player, bidder any
	if st.CurrentPlayer != "" {
		player = st.CurrentPlayer
	}
	if st.HighestBidder != "" {
		bidder = st.HighestBidder
	}
	var lastBid int64
	if !st.LastBidTime.IsZero() {
		lastBid = st.LastBidTime.Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE auction_state SET
			active = ?, paused = ?, current_player = ?, current_list_index = ?,
			base_price = ?, current_bid = ?, highest_bidder = ?,
			countdown_seconds = ?, last_bid_time = ?,
			stats_channel_id = ?, stats_message_id = ?
		WHERE id = 1
	`, boolToInt(st.Active), boolToInt(st.Paused), player, st.CurrentListIndex,
		st.BasePrice, st.CurrentBid, bidder,
		st.CountdownSeconds, lastBid,
		st.StatsChannelID, st.StatsMessageID)
	if err != nil {
		return fmt.Errorf("save auction state: %w", err)
	}
	return nil
}

// ResetAuctionState restores the state row to defaults, preserving the
// configured countdown length.
func (s *Store) ResetAuctionState(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, resetStateSQL); err != nil {
		return fmt.Errorf("reset auction state: %w", err)
	}
	return nil
}
