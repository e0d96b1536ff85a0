package kvstore

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/compozy/toolkit/pkg/config"
	"github.com/dgraph-io/ristretto/v2"
)

const (
	cacheBufferItems = 64
	cacheGenStripes  = 256
)

// CachedBackend serves reads from an in-process cache in front of another
// Backend. Writes go to the backend first and then drop the cached entry.
//
// Every invalidation bumps the generation of the key's stripe. A read only
// fills the cache if its stripe generation is unchanged since before it
// reached the backend, so a value read before a write is never cached after
// it.
type CachedBackend struct {
	next  Backend
	cache *ristretto.Cache[string, []byte]
	ttl   time.Duration

	mu   sync.Mutex
	gens [cacheGenStripes]uint64
}

// NewCachedBackend wraps next. Entries are weighted by their size in bytes;
// cfg.TTL of zero keeps them until evicted.
func NewCachedBackend(next Backend, cfg *config.StorageCacheConfig) (*CachedBackend, error) {
	if next == nil {
		return nil, fmt.Errorf("cached backend requires a backing store")
	}
	if cfg == nil {
		return nil, fmt.Errorf("cache config cannot be nil")
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        cfg.NumCounters,
		MaxCost:            cfg.MaxCost,
		BufferItems:        cacheBufferItems,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create read cache: %w", err)
	}
	return &CachedBackend{next: next, cache: c, ttl: cfg.TTL}, nil
}

func (c *CachedBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		return bytes.Clone(v), nil
	}
	stripe := genStripe(key)
	c.mu.Lock()
	gen := c.gens[stripe]
	c.mu.Unlock()

	v, err := c.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[stripe] == gen {
		c.cache.SetWithTTL(key, bytes.Clone(v), int64(len(v))+1, c.ttl)
		c.cache.Wait()
	}
	return v, nil
}

func (c *CachedBackend) Set(ctx context.Context, key string, value []byte) error {
	defer c.invalidate(key)
	return c.next.Set(ctx, key, value)
}

func (c *CachedBackend) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	defer c.invalidate(key)
	return c.next.SetNX(ctx, key, value)
}

func (c *CachedBackend) Delete(ctx context.Context, key string) error {
	defer c.invalidate(key)
	return c.next.Delete(ctx, key)
}

func (c *CachedBackend) Clear(ctx context.Context) error {
	defer c.invalidateAll()
	return c.next.Clear(ctx)
}

func (c *CachedBackend) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[genStripe(key)]++
	c.cache.Del(key)
}

func (c *CachedBackend) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.gens {
		c.gens[i]++
	}
	c.cache.Clear()
}

func genStripe(key string) uint64 {
	return xxhash.Sum64String(key) % cacheGenStripes
}

func (c *CachedBackend) Close() error {
	c.cache.Close()
	return c.next.Close()
}
