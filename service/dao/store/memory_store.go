// Package store provides a generic in-memory implementation of dao.Service
// that concrete DAOs embed to avoid rewriting identical Save/Load/Delete
// plumbing per entity type.
package store

import (
	"context"
	"sync"

	"github.com/viant/reqflow/service/dao"
)

// MemoryStore keeps entities of type *T mapped by a comparable key K
// obtained from the supplied keySelector.  An optional cloner isolates
// stored state from caller mutation.  The store carries no business logic
// such as stage filtering - higher-level DAOs override List when they need
// additional behaviour.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector func(*T) K
	cloner      func(*T) *T
}

// NewMemoryStore creates a new MemoryStore.  keySelector extracts the
// entity key (usually the ID field) from a value.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
}

// WithCloner installs a copy function applied on every write and read so
// that callers never share memory with stored records.
func (s *MemoryStore[K, T]) WithCloner(cloner func(*T) *T) *MemoryStore[K, T] {
	s.cloner = cloner
	return s
}

func (s *MemoryStore[K, T]) clone(v *T) *T {
	if s.cloner == nil || v == nil {
		return v
	}
	return s.cloner(v)
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = s.clone(v)
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return s.clone(v), nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns all stored records.
func (s *MemoryStore[K, T]) List(_ context.Context, _ ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		out = append(out, s.clone(v))
	}
	return out, nil
}
