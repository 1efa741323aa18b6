package configstore

import (
	"context"
	"strings"
	"sync"
)

// ErrKeyRequired indicates an operation with an empty settings key.
var ErrKeyRequired = errKeyRequired

// MemoryStore keeps settings in-memory for tests and embedded use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore constructs an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get returns the stored value for key, or def when absent.
func (s *MemoryStore) Get(_ context.Context, key, def string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrKeyRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.values[trimmed]; ok {
		return value, nil
	}
	return def, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[trimmed] = value
	return nil
}
