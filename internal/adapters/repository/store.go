// Package repository stores snapshot revisions handed over by the sync layer.
package repository

import (
	"context"
	"time"

	"github.com/okian/flightdesk/internal/domain/model"
)

// Revision is one loaded snapshot in raw form. Raw rows are kept so any
// revision can be normalized again.
type Revision struct {
	ID       string            `json:"id"`
	LoadedAt time.Time         `json:"loaded_at"`
	Raw      model.RawSnapshot `json:"raw"`
}

// Store provides access to snapshot revisions, newest last.
type Store interface {
	// Put appends a revision, which becomes the current one.
	Put(ctx context.Context, rev Revision) error

	// Current returns the newest revision, or ErrNotFound when empty.
	Current(ctx context.Context) (Revision, error)

	// Get returns a revision by id, or ErrNotFound.
	Get(ctx context.Context, id string) (Revision, error)

	// Count returns the number of retained revisions.
	Count(ctx context.Context) int

	Close() error
}
