package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/compozy/toolkit/engine/core"
	"github.com/compozy/toolkit/pkg/logger"
)

// Store reads and writes JSON-encoded values through a Backend.
// It is safe for concurrent use when its Backend is.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Set stores value under key. Values that cannot be encoded fail with a
// *core.SerializationError and leave the stored value unchanged.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Get decodes the value stored under key into T.
//
// An absent key yields def and no error. A stored value that does not decode
// into T yields def together with a *core.SerializationError. Backend
// failures are returned with def.
func Get[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("failed to get %q: %w", key, err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.FromContext(ctx).Warn("Stored value could not be decoded", "key", key, "error", err)
		return def, &core.SerializationError{Index: -1, Key: key, Err: err}
	}
	return out, nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Ensure stores def under key only if key is absent and reports whether it
// wrote. The check and the write are a single backend operation.
func (s *Store) Ensure(ctx context.Context, key string, def any) (bool, error) {
	data, err := encode(key, def)
	if err != nil {
		return false, err
	}
	written, err := s.backend.SetNX(ctx, key, data)
	if err != nil {
		return false, fmt.Errorf("failed to ensure %q: %w", key, err)
	}
	return written, nil
}

// Clear removes every key in the store's scope.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

func encode(key string, value any) ([]byte, error) {
	data, err := core.CanonicalJSON(value)
	if err != nil {
		return nil, core.AsSerializationError(err, -1, key)
	}
	return data, nil
}
