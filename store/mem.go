package store

import (
	"context"
	"sync"
)

// MemBackend keeps values in memory.
type MemBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemBackend() *MemBackend { return &MemBackend{data: make(map[string][]byte)} }

func (m *MemBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemBackend) Close() error { return nil }
