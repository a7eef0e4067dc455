// Package dedupe tracks identifiers that have already been seen.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Deduper records seen identifiers.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool
}

// inMemoryDeduper keeps trimmed ids in a set. IDs compare exactly, matching
// how snapshots index records.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	k := strings.TrimSpace(id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[k]; ok {
		return true
	}
	d.seen[k] = struct{}{}
	return false
}
