package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReleasePlayer removes a rostered player and requeues them for
// re-auction, atomically: refund the roster price, delete the roster row,
// clear any prior sale record for the name, record a released
// disposition, requeue the player in the given pool list with the reset
// base price, and pin that list to the front of the list order.
//
// Requeueing is idempotent at the pool level: an existing unresolved
// entry for the player is updated in place, never duplicated.
//
// Returns the removed roster row, or ErrNotFound if the player is not on
// any roster.
func (s *Store) ReleasePlayer(ctx context.Context, player, list string, resetBase int64) (SquadPlayer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	released, err := squadRowInTx(ctx, tx, player)
	if err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE teams SET purse = purse + ? WHERE team_code = ?", released.Price, released.Team); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: refund: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM team_squads WHERE player_name = ? COLLATE NOCASE
	`, player); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: roster delete: %w", err)
	}

	if err := deleteSalesFor(ctx, tx, player); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sales (player_name, team_code, final_price, total_bids, status)
		VALUES (?, ?, ?, 0, ?)
	`, released.Name, released.Team, released.Price, string(SaleReleased)); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: record disposition: %w", err)
	}

	if err := requeueInTx(ctx, tx, released.Name, list, resetBase, released.Overseas); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: %w", err)
	}
	if err := pinListInTx(ctx, tx, list, true); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SquadPlayer{}, fmt.Errorf("release player: commit: %w", err)
	}
	return released, nil
}

// ReauctionPlayer requeues a previously auctioned, currently unowned
// player, atomically: clear any stale sale record, reset the auctioned
// flag into the given pool list, and append that list to the back of the
// list order.
//
// Returns ErrDuplicatePlayer if the player is still on a roster and
// ErrNotFound if the player was never auctioned.
func (s *Store) ReauctionPlayer(ctx context.Context, player, list string) (PoolPlayer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var owned int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM team_squads WHERE player_name = ? COLLATE NOCASE", player).Scan(&owned)
	if err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: %w", err)
	}
	if owned > 0 {
		return PoolPlayer{}, ErrDuplicatePlayer
	}

	entry, err := poolEntryInTx(ctx, tx, player)
	if errors.Is(err, ErrNotFound) {
		// Never loaded into a pool. A stale sale record alone still
		// qualifies as previously auctioned; requeue at the sale price.
		var name string
		var price int64
		saleErr := tx.QueryRowContext(ctx, `
			SELECT player_name, final_price FROM sales
			WHERE player_name = ? COLLATE NOCASE
			ORDER BY id DESC LIMIT 1
		`, player).Scan(&name, &price)
		if errors.Is(saleErr, sql.ErrNoRows) {
			return PoolPlayer{}, ErrNotFound
		}
		if saleErr != nil {
			return PoolPlayer{}, fmt.Errorf("reauction player: %w", saleErr)
		}
		entry = PoolPlayer{Name: name, BasePrice: price}
	} else if err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: %w", err)
	} else if !entry.Auctioned {
		// Still waiting in a pool; nothing to re-auction.
		return PoolPlayer{}, ErrNotFound
	}

	if err := deleteSalesFor(ctx, tx, player); err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: %w", err)
	}
	if err := requeueInTx(ctx, tx, entry.Name, list, entry.BasePrice, entry.Overseas); err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: %w", err)
	}
	if err := pinListInTx(ctx, tx, list, false); err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return PoolPlayer{}, fmt.Errorf("reauction player: commit: %w", err)
	}
	entry.List = list
	entry.Auctioned = false
	return entry, nil
}

// RequeueCurrent moves an already-drawn player into the given pool list
// with the auctioned flag reset, appending the list to the back of the
// order. Used when the auctioneer skips the current player.
func (s *Store) RequeueCurrent(ctx context.Context, player, list string, basePrice int64, overseas bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("requeue current: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := requeueInTx(ctx, tx, player, list, basePrice, overseas); err != nil {
		return fmt.Errorf("requeue current: %w", err)
	}
	if err := pinListInTx(ctx, tx, list, false); err != nil {
		return fmt.Errorf("requeue current: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("requeue current: commit: %w", err)
	}
	return nil
}

func deleteSalesFor(ctx context.Context, tx *sql.Tx, player string) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sales WHERE player_name = ? COLLATE NOCASE", player); err != nil {
		return fmt.Errorf("delete sales for %s: %w", player, err)
	}
	return nil
}

// requeueInTx reuses the player's existing pool row when one exists,
// otherwise inserts a fresh one. Either way the row ends up unresolved in
// the target list at the given base price, with the bid ledger cleared:
// the next round starts from the base price, not from stale bids.
func requeueInTx(ctx context.Context, tx *sql.Tx, player, list string, basePrice int64, overseas bool) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM bid_history WHERE player_name = ? COLLATE NOCASE", player); err != nil {
		return fmt.Errorf("requeue %s: clear bids: %w", player, err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE player_lists
		SET list_name = ?, base_price = ?, auctioned = 0
		WHERE id = (
			SELECT id FROM player_lists
			WHERE player_name = ? COLLATE NOCASE
			ORDER BY id DESC LIMIT 1
		)
	`, list, basePrice, player)
	if err != nil {
		return fmt.Errorf("requeue %s: %w", player, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("requeue %s: %w", player, err)
	}
	if n > 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO player_lists (list_name, player_name, base_price, is_overseas)
		VALUES (?, ?, ?, ?)
	`, list, player, basePrice, boolToInt(overseas)); err != nil {
		return fmt.Errorf("requeue %s: %w", player, err)
	}
	return nil
}

// pinListInTx ensures list is present in the order, at the front when
// front is true, otherwise at the back. An already-present list is moved
// only when front pinning demands it.
func pinListInTx(ctx context.Context, tx *sql.Tx, list string, front bool) error {
	order, err := readListOrder(ctx, tx)
	if err != nil {
		return err
	}

	idx := -1
	for i, name := range order {
		if name == list {
			idx = i
			break
		}
	}

	switch {
	case idx == -1 && front:
		order = append([]string{list}, order...)
	case idx == -1:
		order = append(order, list)
	case front && idx > 0:
		order = append(order[:idx], order[idx+1:]...)
		order = append([]string{list}, order...)
	default:
		return nil
	}

	return writeListOrder(ctx, tx, order)
}

func poolEntryInTx(ctx context.Context, tx *sql.Tx, player string) (PoolPlayer, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT id, list_name, player_name, base_price, is_overseas, auctioned
		FROM player_lists
		WHERE player_name = ? COLLATE NOCASE
		ORDER BY id DESC LIMIT 1
	`, player)
	p, err := scanPoolRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PoolPlayer{}, ErrNotFound
	}
	if err != nil {
		return PoolPlayer{}, err
	}
	return p, nil
}
