// Package engine implements the live auction state machine.
//
// The engine is the heart of the auction - it accepts bids, resolves
// proxy maximums, advances the player cursor, and finalizes sales.
//
// ARCHITECTURE:
//
// Single-Lock Operation Model:
// Every mutating operation runs under one mutex held for the operation's
// full duration, including the persistence round-trip. This ensures:
// - Atomic bid acceptance: validate, record, resolve proxies as one unit
// - No interleaving between a sale finalize and a concurrent bid
// - Simple reasoning about who leads at any instant
//
// Bid Acceptance Flow:
// 1. Precondition checks (active, not paused, team known, caps, purse)
// 2. Accepted amount computed by the engine (base price or current+step)
// 3. Bid appended to the ledger, snapshot row updated
// 4. Proxy maximums evaluated in a bounded loop; system raises recorded
// 5. Caller receives the human bid plus any proxy raises it triggered
//
// Finalization re-reads the persisted snapshot and treats the bid ledger
// as the authority for winner and amount. Money movement happens inside
// store transactions with conditional purse updates, so an integrity
// failure surfaces as a typed error instead of partial state.
//
// Report regeneration is a best-effort side effect dispatched outside
// the lock; a slow or failing report never stalls bidding.
package engine
