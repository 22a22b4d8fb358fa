package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps the session entry in process memory. It is the default
// backend when no durable store is configured; the entry does not survive a
// restart, which degrades rehydration to a cache miss.
type MemoryStore struct {
	mu    sync.Mutex
	entry []byte
	set   bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrNoEntry
	}
	out := make([]byte, len(s.entry))
	copy(out, s.entry)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, entry []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = make([]byte, len(entry))
	copy(s.entry, entry)
	s.set = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
	s.set = false
	return nil
}
