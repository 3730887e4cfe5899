package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaleStatus is the disposition of a finalized player.
type SaleStatus string

const (
	SaleSold     SaleStatus = "sold"
	SaleUnsold   SaleStatus = "unsold"
	SaleReleased SaleStatus = "released"
)

// SaleRecord is one finalized disposition.
type SaleRecord struct {
	ID        int64
	Player    string
	Team      string // empty for unsold/released
	Price     int64
	TotalBids int
	Status    SaleStatus
	SoldAt    time.Time
}

// FinalizeSale converts the winning bid into a permanent sale as one
// atomic transaction: verify the player is not already on any roster,
// deduct the amount from the winner's purse (conditional update), insert
// the roster row, insert the sale record. Any failure rolls the whole
// operation back with nothing mutated.
//
// Returns ErrDuplicatePlayer if the player is already rostered and
// ErrInsufficientFunds if the purse cannot cover the amount.
func (s *Store) FinalizeSale(ctx context.Context, player, team string, amount int64, totalBids int, overseas bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("finalize sale: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var owned int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM team_squads WHERE player_name = ? COLLATE NOCASE", player).Scan(&owned)
	if err != nil {
		return fmt.Errorf("finalize sale: %w", err)
	}
	if owned > 0 {
		return ErrDuplicatePlayer
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE teams SET purse = purse - ?
		WHERE team_code = ? AND purse >= ?
	`, amount, team, amount)
	if err != nil {
		return fmt.Errorf("finalize sale: deduct: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finalize sale: deduct: %w", err)
	}
	if n == 0 {
		return ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_squads (team_code, player_name, price, is_overseas, acquisition)
		VALUES (?, ?, ?, ?, ?)
	`, team, player, amount, boolToInt(overseas), string(AcquiredBought))
	if isUniqueViolation(err) {
		return ErrDuplicatePlayer
	}
	if err != nil {
		return fmt.Errorf("finalize sale: roster insert: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (player_name, team_code, final_price, total_bids, status)
		VALUES (?, ?, ?, ?, ?)
	`, player, team, amount, totalBids, string(SaleSold))
	if err != nil {
		return fmt.Errorf("finalize sale: sale insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("finalize sale: commit: %w", err)
	}
	return nil
}

// RecordUnsold records a player that received no winning bid.
func (s *Store) RecordUnsold(ctx context.Context, player string, basePrice int64, totalBids int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (player_name, team_code, final_price, total_bids, status)
		VALUES (?, NULL, ?, ?, ?)
	`, player, basePrice, totalBids, string(SaleUnsold))
	if err != nil {
		return fmt.Errorf("record unsold: %w", err)
	}
	return nil
}

// SaleExistsFor reports whether any disposition exists for a player.
func (s *Store) SaleExistsFor(ctx context.Context, player string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sales WHERE player_name = ? COLLATE NOCASE", player).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query sale exists: %w", err)
	}
	return count > 0, nil
}

// SaleResolvedFor reports whether a resolving disposition (sold or
// unsold) exists for a player. A released row alone does not count:
// release puts the player back in the pool for another round, and the
// row only records that it happened.
func (s *Store) SaleResolvedFor(ctx context.Context, player string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sales
		WHERE player_name = ? COLLATE NOCASE AND status IN (?, ?)
	`, player, string(SaleSold), string(SaleUnsold)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query sale resolved: %w", err)
	}
	return count > 0, nil
}

// Sales returns all dispositions in sale order.
func (s *Store) Sales(ctx context.Context) ([]SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, team_code, final_price, total_bids, status, sold_at
		FROM sales
		ORDER BY sold_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []SaleRecord
	for rows.Next() {
		rec, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

// LastCompletedSale returns the most recent sold-status record.
// Returns ErrNotFound when no completed sale exists.
func (s *Store) LastCompletedSale(ctx context.Context) (SaleRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player_name, team_code, final_price, total_bids, status, sold_at
		FROM sales
		WHERE status = ?
		ORDER BY sold_at DESC, id DESC
		LIMIT 1
	`, string(SaleSold))

	rec, err := scanSaleRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SaleRecord{}, ErrNotFound
	}
	if err != nil {
		return SaleRecord{}, fmt.Errorf("query last sale: %w", err)
	}
	return rec, nil
}

// RollbackLastSale reverses the most recent completed sale as one
// compensating transaction: refund the purse, remove the roster row,
// delete the sale record. Only one level of rollback exists; calling it
// again targets the next-most-recent sale.
//
// Returns the reversed record, or ErrNotFound when no completed sale
// exists.
func (s *Store) RollbackLastSale(ctx context.Context) (SaleRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	row := tx.QueryRowContext(ctx, `
		SELECT id, player_name, team_code, final_price, total_bids, status, sold_at
		FROM sales
		WHERE status = ?
		ORDER BY sold_at DESC, id DESC
		LIMIT 1
	`, string(SaleSold))
	rec, err := scanSaleRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SaleRecord{}, ErrNotFound
	}
	if err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE teams SET purse = purse + ? WHERE team_code = ?", rec.Price, rec.Team); err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: refund: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM team_squads
		WHERE team_code = ? AND player_name = ? COLLATE NOCASE
	`, rec.Team, rec.Player); err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: roster delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", rec.ID); err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: sale delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SaleRecord{}, fmt.Errorf("rollback sale: commit: %w", err)
	}
	return rec, nil
}

// ClearSales deletes all dispositions.
func (s *Store) ClearSales(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sales"); err != nil {
		return fmt.Errorf("clear sales: %w", err)
	}
	return nil
}

func scanSaleRow(row rowScanner) (SaleRecord, error) {
	var rec SaleRecord
	var team sql.NullString
	var status string
	var soldAt sql.NullTime
	err := row.Scan(&rec.ID, &rec.Player, &team, &rec.Price, &rec.TotalBids, &status, &soldAt)
	if err != nil {
		return SaleRecord{}, err
	}
	rec.Team = team.String
	rec.Status = SaleStatus(status)
	rec.SoldAt = soldAt.Time
	return rec, nil
}
