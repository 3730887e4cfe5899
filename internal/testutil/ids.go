package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs generates predictable ids ("test-id-1", "test-id-2", ...)
// so golden output and trade ids are stable across runs.
//
// Thread-safe: safe for concurrent use.
type SequentialIDs struct {
	mu  sync.Mutex
	seq int
}

// NewSequentialIDs creates a generator starting at 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// Next returns the next id in sequence.
func (g *SequentialIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("test-id-%d", g.seq)
}
