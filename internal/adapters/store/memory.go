package store

import (
	"sync"

	"quacker/internal/domain"
)

// MemoryStore is an in-memory feed store.
// Save and Fetch are serialized; Fetch returns a copy of the feed.
type MemoryStore struct {
	mu     sync.RWMutex
	quacks []domain.Quack
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends a quack to the feed. It never fails.
func (s *MemoryStore) Save(quack domain.Quack) error {
	s.mu.Lock()
	s.quacks = append(s.quacks, quack)
	s.mu.Unlock()
	return nil
}

// Fetch returns a snapshot of the feed, oldest first.
func (s *MemoryStore) Fetch() []domain.Quack {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Quack, len(s.quacks))
	copy(out, s.quacks)
	return out
}

// Len returns the number of stored quacks.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quacks)
}

// Clear drops every stored quack.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.quacks = nil
	s.mu.Unlock()
}
