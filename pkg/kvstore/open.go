package kvstore

import (
	"context"
	"fmt"

	"github.com/compozy/toolkit/engine/infra/cache"
	"github.com/compozy/toolkit/pkg/config"
	"github.com/compozy/toolkit/pkg/logger"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Open builds a Store from configuration.
func Open(ctx context.Context, cfg *config.StorageConfig) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config cannot be nil")
	}
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	instrumented, err := NewInstrumentedBackend(backend, nil)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	backend = instrumented
	if cfg.Cache.Enabled {
		cached, err := NewCachedBackend(backend, &cfg.Cache)
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		backend = cached
	}
	logger.FromContext(ctx).Debug(
		"Key-value store opened",
		"driver", cfg.Driver,
		"prefix", cfg.Prefix,
		"cache_enabled", cfg.Cache.Enabled,
	)
	return New(backend), nil
}

func openBackend(ctx context.Context, cfg *config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryBackend(cfg.Memory.Capacity)
	case DriverRedis:
		client, err := cache.NewRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		backend, err := NewRedisBackend(client, cfg.Prefix, &cfg.Retry)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
