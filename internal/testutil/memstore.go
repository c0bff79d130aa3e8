// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"ltask/internal/storage"
)

// MemoryStore is an in-memory implementation of storage.Store for testing.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Put stores a raw value without counting it as a write.
func (m *MemoryStore) Put(key string, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = []byte(value)
}

// Value returns the raw value under key and whether it exists.
func (m *MemoryStore) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return string(v), ok
}

// Writes returns how many times Set succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Get implements storage.Store.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set implements storage.Store.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	m.writes++
	return nil
}

// Close implements storage.Store.
func (m *MemoryStore) Close() error { return nil }
