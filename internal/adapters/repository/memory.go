package repository

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the most recent revisions in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	revisions []Revision
	limit     int
	closed    bool
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{limit: o.historySize}
}

func (s *MemoryStore) Put(_ context.Context, rev Revision) error {
	if rev.ID == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.revisions = append(s.revisions, rev)
	if over := len(s.revisions) - s.limit; over > 0 {
		s.revisions = append(s.revisions[:0:0], s.revisions[over:]...)
	}
	return nil
}

func (s *MemoryStore) Current(_ context.Context) (Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.revisions) == 0 {
		return Revision{}, ErrNotFound
	}
	return s.revisions[len(s.revisions)-1], nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.revisions) - 1; i >= 0; i-- {
		if s.revisions[i].ID == id {
			return s.revisions[i], nil
		}
	}
	return Revision{}, ErrNotFound
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revisions)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
