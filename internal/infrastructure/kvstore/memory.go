package kvstore

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by a MemoryStore after Close
var ErrClosed = errors.New("store closed")

// MemoryStore is a thread-safe in-memory key-value store.
// Contents are lost on exit.
type MemoryStore struct {
	data   map[string]string
	mutex  sync.RWMutex
	closed bool
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Get retrieves a value from the store
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return "", false, ErrClosed
	}
	value, exists := s.data[key]
	return value, exists, nil
}

// Set stores a value, replacing any previous one
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.data[key] = value
	return nil
}

// Health fails once the store is closed
func (s *MemoryStore) Health(ctx context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the store closed; later reads and writes fail
func (s *MemoryStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	return nil
}
