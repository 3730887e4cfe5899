// Package store provides SQLite-backed durable storage for auction state.
//
// The store holds:
//   - Teams: purses, with the original purse retained for resets
//   - Team squads: roster rows, one owner per player
//   - Player lists: pool lists of not-yet-sold players, plus the walk order
//   - Auction state: a single-row snapshot of the engine's mutable state
//   - Bid history: the append-only ledger
//   - Auto bids: per-team proxy maximums
//   - Sales and trade history: finalized dispositions and trade audit rows
//
// # Integrity Patterns
//
// Single owner:
//   - UNIQUE index on team_squads.player_name COLLATE NOCASE
//   - Duplicate roster inserts fail with ErrDuplicatePlayer; they are
//     never reconciled after the fact
//
// Checked money movement:
//   - Every purse deduction is a single conditional UPDATE
//     (WHERE purse >= amount), so a purse cannot go negative even outside
//     the engine lock
//   - Multi-statement money movement (finalize, rollback, trades, release)
//     runs inside one transaction; partial application is impossible
//
// Deterministic ordering:
//   - Ledger reads ORDER BY ts ASC, id ASC (wall clock, then insertion
//     sequence)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
