// Package kvstore is a scoped key-value store over text-encoded values.
//
// A Store encodes values as canonical JSON and delegates storage to a
// Backend: an in-process LRU, Redis, or either behind a read-through cache.
package kvstore

import "context"

// Backend stores raw encoded values by key.
//
// Get returns ErrNotFound for absent keys. Delete of an absent key succeeds.
// Clear removes only the keys owned by the backend's scope. Every method
// returns ErrClosed after Close.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
