package kvstore

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryBackend is a bounded in-process Backend. When full, the least
// recently used key is evicted.
type MemoryBackend struct {
	cache  *lru.Cache[string, []byte]
	closed atomic.Bool
}

func NewMemoryBackend(capacity int) (*MemoryBackend, error) {
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory backend: %w", err)
	}
	return &MemoryBackend{cache: cache}, nil
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.cache.Add(key, bytes.Clone(value))
	return nil
}

func (m *MemoryBackend) SetNX(_ context.Context, key string, value []byte) (bool, error) {
	if m.closed.Load() {
		return false, ErrClosed
	}
	present, _ := m.cache.ContainsOrAdd(key, bytes.Clone(value))
	return !present, nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.cache.Remove(key)
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.cache.Purge()
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryBackend) Len() int {
	return m.cache.Len()
}

func (m *MemoryBackend) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.cache.Purge()
	return nil
}
