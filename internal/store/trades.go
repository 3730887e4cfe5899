package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TradeType distinguishes cash trades from swaps.
type TradeType string

const (
	TradeCash TradeType = "cash"
	TradeSwap TradeType = "swap"
)

// TradeRecord is one row of the trade audit trail. Swaps write two rows
// sharing TradeID, one per moved player.
type TradeRecord struct {
	ID            int64
	TradeID       string
	Player        string
	FromTeam      string
	ToTeam        string
	TradePrice    int64
	OriginalPrice int64
	Type          TradeType
	Compensation  int64
	CompPayer     string
	TradedAt      time.Time
}

// ApplyCashTrade moves a player between rosters for cash, atomically:
// the destination is debited the price (conditional update), the source
// is credited, the roster row moves with its price rewritten to the
// trade price, and one trade-history row is written.
//
// Returns ErrNotFound if the player is not on the source team's roster
// and ErrInsufficientFunds if the destination purse cannot cover the
// price.
func (s *Store) ApplyCashTrade(ctx context.Context, tradeID, player, from, to string, price int64) (SquadPlayer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	moved, err := squadRowInTx(ctx, tx, player)
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: %w", err)
	}
	if moved.Team != from {
		return SquadPlayer{}, ErrNotFound
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE teams SET purse = purse - ?
		WHERE team_code = ? AND purse >= ?
	`, price, to, price)
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: debit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: debit: %w", err)
	}
	if n == 0 {
		return SquadPlayer{}, ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE teams SET purse = purse + ? WHERE team_code = ?", price, from); err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: credit: %w", err)
	}

	// The moved player's stored price becomes the trade price, not its
	// original acquisition price.
	if _, err := tx.ExecContext(ctx, `
		UPDATE team_squads
		SET team_code = ?, price = ?, acquisition = ?, source_team = ?
		WHERE player_name = ? COLLATE NOCASE
	`, to, price, string(AcquiredTraded), from, player); err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: roster move: %w", err)
	}

	if err := insertTradeRow(ctx, tx, TradeRecord{
		TradeID:       tradeID,
		Player:        moved.Name,
		FromTeam:      from,
		ToTeam:        to,
		TradePrice:    price,
		OriginalPrice: moved.Price,
		Type:          TradeCash,
	}); err != nil {
		return SquadPlayer{}, err
	}

	if err := tx.Commit(); err != nil {
		return SquadPlayer{}, fmt.Errorf("cash trade: commit: %w", err)
	}
	return moved, nil
}

// ApplySwap exchanges two rostered players atomically. Each player keeps
// its original price on its new roster; only the absolute difference of
// the two original prices moves, paid by the team receiving the
// higher-valued player. An optional compensation amount with an explicit
// payer moves independently. Both teams' net deltas are computed and
// validated against their purses before any mutation is applied.
//
// compPayer must be one of the two owning team codes, or empty when comp
// is zero. Returns the two pre-move roster rows.
func (s *Store) ApplySwap(ctx context.Context, tradeID, playerA, playerB string, comp int64, compPayer string) (SquadPlayer, SquadPlayer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	rowA, err := squadRowInTx(ctx, tx, playerA)
	if err != nil {
		return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: %w", err)
	}
	rowB, err := squadRowInTx(ctx, tx, playerB)
	if err != nil {
		return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: %w", err)
	}

	teamA, teamB := rowA.Team, rowB.Team

	// Net delta per team: the team receiving the higher-valued player
	// pays the price difference; compensation moves on top.
	deltaA := rowA.Price - rowB.Price // A gives away rowA, receives rowB
	deltaB := -deltaA
	switch compPayer {
	case teamA:
		deltaA -= comp
		deltaB += comp
	case teamB:
		deltaB -= comp
		deltaA += comp
	}

	for _, leg := range []struct {
		team  string
		delta int64
	}{{teamA, deltaA}, {teamB, deltaB}} {
		if leg.delta >= 0 {
			if _, err := tx.ExecContext(ctx,
				"UPDATE teams SET purse = purse + ? WHERE team_code = ?", leg.delta, leg.team); err != nil {
				return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: credit %s: %w", leg.team, err)
			}
			continue
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE teams SET purse = purse - ?
			WHERE team_code = ? AND purse >= ?
		`, -leg.delta, leg.team, -leg.delta)
		if err != nil {
			return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: debit %s: %w", leg.team, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: debit %s: %w", leg.team, err)
		}
		if n == 0 {
			return SquadPlayer{}, SquadPlayer{}, ErrInsufficientFunds
		}
	}

	// Each player keeps its original price in its new roster.
	for _, move := range []struct {
		player string
		from   string
		to     string
	}{{rowA.Name, teamA, teamB}, {rowB.Name, teamB, teamA}} {
		if _, err := tx.ExecContext(ctx, `
			UPDATE team_squads
			SET team_code = ?, acquisition = ?, source_team = ?
			WHERE player_name = ? COLLATE NOCASE
		`, move.to, string(AcquiredTraded), move.from, move.player); err != nil {
			return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: roster move: %w", err)
		}
	}

	// Two linked rows for symmetric auditability.
	for _, rec := range []TradeRecord{
		{TradeID: tradeID, Player: rowA.Name, FromTeam: teamA, ToTeam: teamB,
			TradePrice: rowA.Price, OriginalPrice: rowA.Price,
			Type: TradeSwap, Compensation: comp, CompPayer: compPayer},
		{TradeID: tradeID, Player: rowB.Name, FromTeam: teamB, ToTeam: teamA,
			TradePrice: rowB.Price, OriginalPrice: rowB.Price,
			Type: TradeSwap, Compensation: comp, CompPayer: compPayer},
	} {
		if err := insertTradeRow(ctx, tx, rec); err != nil {
			return SquadPlayer{}, SquadPlayer{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return SquadPlayer{}, SquadPlayer{}, fmt.Errorf("swap: commit: %w", err)
	}
	return rowA, rowB, nil
}

// Trades returns the full trade audit trail in trade order.
func (s *Store) Trades(ctx context.Context) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trade_id, player_name, from_team, to_team,
		       trade_price, original_price, trade_type, compensation, comp_payer, traded_at
		FROM trade_history
		ORDER BY traded_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var trades []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var typ string
		var payer sql.NullString
		var at sql.NullTime
		err := rows.Scan(&rec.ID, &rec.TradeID, &rec.Player, &rec.FromTeam, &rec.ToTeam,
			&rec.TradePrice, &rec.OriginalPrice, &typ, &rec.Compensation, &payer, &at)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		rec.Type = TradeType(typ)
		rec.CompPayer = payer.String
		rec.TradedAt = at.Time
		trades = append(trades, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return trades, nil
}

// ClearTrades deletes the trade audit trail.
func (s *Store) ClearTrades(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM trade_history"); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	return nil
}

func squadRowInTx(ctx context.Context, tx *sql.Tx, player string) (SquadPlayer, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT team_code, player_name, price, is_overseas, acquisition, source_team, bought_at
		FROM team_squads
		WHERE player_name = ? COLLATE NOCASE
	`, player)
	p, err := scanSquadRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SquadPlayer{}, ErrNotFound
	}
	if err != nil {
		return SquadPlayer{}, err
	}
	return p, nil
}

func insertTradeRow(ctx context.Context, tx *sql.Tx, rec TradeRecord) error {
	var payer any
	if rec.CompPayer != "" {
		payer = rec.CompPayer
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO trade_history
		(trade_id, player_name, from_team, to_team, trade_price, original_price, trade_type, compensation, comp_payer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.TradeID, rec.Player, rec.FromTeam, rec.ToTeam,
		rec.TradePrice, rec.OriginalPrice, string(rec.Type), rec.Compensation, payer)
	if err != nil {
		return fmt.Errorf("insert trade row: %w", err)
	}
	return nil
}
