package store

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in-process. Used in tests and as a
// fallback when neither Redis nor Postgres is configured; state is lost
// on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, session, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[session+":"+key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, session, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session+":"+key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, session, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, session+":"+key)
	return nil
}
