package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PoolPlayer is one not-yet-sold catalog entry.
type PoolPlayer struct {
	ID        int64
	List      string
	Name      string
	BasePrice int64
	Overseas  bool
	Auctioned bool
}

// CreateList registers a pool list name at the back of the list order.
// List names are caseless-unique; returns false if the list already exists.
func (s *Store) CreateList(ctx context.Context, name string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("create list: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM list_order WHERE list_name = ? COLLATE NOCASE", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("create list: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO list_order (position, list_name)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM list_order), ?)
	`, name)
	if err != nil {
		return false, fmt.Errorf("create list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("create list: commit: %w", err)
	}
	return true, nil
}

// AddPoolPlayer appends a player to a pool list.
func (s *Store) AddPoolPlayer(ctx context.Context, list, name string, basePrice int64, overseas bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO player_lists (list_name, player_name, base_price, is_overseas)
		VALUES (?, ?, ?, ?)
	`, list, name, basePrice, boolToInt(overseas))
	if err != nil {
		return fmt.Errorf("add pool player: %w", err)
	}
	return nil
}

// PoolLists returns all unresolved (not yet auctioned) players grouped by
// list name.
func (s *Store) PoolLists(ctx context.Context) (map[string][]PoolPlayer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, list_name, player_name, base_price, is_overseas, auctioned
		FROM player_lists
		WHERE auctioned = 0
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query pool lists: %w", err)
	}
	defer rows.Close()

	lists := map[string][]PoolPlayer{}
	for rows.Next() {
		p, err := scanPoolRow(rows)
		if err != nil {
			return nil, err
		}
		lists[p.List] = append(lists[p.List], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool lists: %w", err)
	}
	return lists, nil
}

// ListOrder returns list names in walk order.
func (s *Store) ListOrder(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT list_name FROM list_order ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("query list order: %w", err)
	}
	defer rows.Close()

	var order []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan list order: %w", err)
		}
		order = append(order, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list order: %w", err)
	}
	return order, nil
}

// SetListOrder replaces the entire list order.
func (s *Store) SetListOrder(ctx context.Context, order []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set list order: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := writeListOrder(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set list order: commit: %w", err)
	}
	return nil
}

// RandomUnresolved picks one unresolved player uniformly at random from a
// list. Returns ErrNotFound when the list has no unresolved players.
func (s *Store) RandomUnresolved(ctx context.Context, list string) (PoolPlayer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, list_name, player_name, base_price, is_overseas, auctioned
		FROM player_lists
		WHERE list_name = ? COLLATE NOCASE AND auctioned = 0
		ORDER BY RANDOM() LIMIT 1
	`, list)

	p, err := scanPoolRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PoolPlayer{}, ErrNotFound
	}
	if err != nil {
		return PoolPlayer{}, err
	}
	return p, nil
}

// MarkAuctioned flags a pool entry as consumed.
func (s *Store) MarkAuctioned(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE player_lists SET auctioned = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("mark auctioned: %w", err)
	}
	return nil
}

// PoolEntry returns the most recent pool row for a player name (caseless),
// resolved or not. Returns ErrNotFound if the player was never loaded.
func (s *Store) PoolEntry(ctx context.Context, player string) (PoolPlayer, error) {
	row := s.db.QueryRowContext(ctx, `
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

// AuctionedCount returns how many players in a list are already resolved.
func (s *Store) AuctionedCount(ctx context.Context, list string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM player_lists
		WHERE list_name = ? COLLATE NOCASE AND auctioned = 1
	`, list).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count auctioned: %w", err)
	}
	return count, nil
}

// DeleteList removes a list's players and its order entry (caseless).
// Returns the number of player rows deleted.
func (s *Store) DeleteList(ctx context.Context, name string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("delete list: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx,
		"DELETE FROM player_lists WHERE list_name = ? COLLATE NOCASE", name)
	if err != nil {
		return 0, fmt.Errorf("delete list: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete list: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM list_order WHERE list_name = ? COLLATE NOCASE", name); err != nil {
		return 0, fmt.Errorf("delete list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete list: commit: %w", err)
	}
	return deleted, nil
}

// ClearPools deletes all pool lists and the list order.
func (s *Store) ClearPools(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear pools: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, "DELETE FROM player_lists"); err != nil {
		return fmt.Errorf("clear pools: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM list_order"); err != nil {
		return fmt.Errorf("clear pools: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("clear pools: commit: %w", err)
	}
	return nil
}

// writeListOrder rewrites list_order inside tx. Positions are rewritten
// densely from 1; rewriting avoids transient UNIQUE collisions that an
// in-place position shift would hit.
func writeListOrder(ctx context.Context, tx *sql.Tx, order []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM list_order"); err != nil {
		return fmt.Errorf("write list order: %w", err)
	}
	for i, name := range order {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO list_order (position, list_name) VALUES (?, ?)", i+1, name); err != nil {
			return fmt.Errorf("write list order: insert %s: %w", name, err)
		}
	}
	return nil
}

// readListOrder reads the current order inside tx.
func readListOrder(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT list_name FROM list_order ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("read list order: %w", err)
	}
	defer rows.Close()

	var order []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("read list order: %w", err)
		}
		order = append(order, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read list order: %w", err)
	}
	return order, nil
}

func scanPoolRow(row rowScanner) (PoolPlayer, error) {
	var p PoolPlayer
	var overseas, auctioned int
	var base sql.NullInt64
	err := row.Scan(&p.ID, &p.List, &p.Name, &base, &overseas, &auctioned)
	if err != nil {
		return PoolPlayer{}, err
	}
	p.BasePrice = base.Int64
	p.Overseas = overseas != 0
	p.Auctioned = auctioned != 0
	return p, nil
}
