package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/compozy/toolkit/engine/infra/cache"
	"github.com/compozy/toolkit/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

const (
	defaultScanCount   int64 = 100
	minRetryBackoff          = time.Millisecond
	redisKeySeparator        = ":"
)

// RedisBackend stores values in Redis under "<prefix>:<key>". Transient
// command failures are retried with exponential backoff.
type RedisBackend struct {
	client     cache.RedisClient
	prefix     string
	maxRetries uint64
	backoff    time.Duration
	scanCount  int64
	closed     atomic.Bool
}

// NewRedisBackend wraps client. A nil retry config disables retries.
func NewRedisBackend(client cache.RedisClient, prefix string, retryCfg *config.RetryConfig) (*RedisBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	b := &RedisBackend{
		client:    client,
		prefix:    prefix,
		backoff:   minRetryBackoff,
		scanCount: defaultScanCount,
	}
	if retryCfg != nil {
		if retryCfg.MaxAttempts > 1 {
			b.maxRetries = retryCfg.MaxAttempts - 1
		}
		if retryCfg.Backoff > minRetryBackoff {
			b.backoff = retryCfg.Backoff
		}
	}
	return b, nil
}

func (b *RedisBackend) key(k string) string {
	if b.prefix == "" {
		return k
	}
	return b.prefix + redisKeySeparator + k
}

// scopePattern matches every key owned by the backend.
func (b *RedisBackend) scopePattern() string {
	if b.prefix == "" {
		return "*"
	}
	return escapeGlob(b.prefix) + redisKeySeparator + "*"
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

// do runs fn, retrying failures other than a missing key or a finished
// context.
func (b *RedisBackend) do(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.closed.Load() {
		return ErrClosed
	}
	backoff := retry.WithMaxRetries(b.maxRetries, retry.NewExponential(b.backoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.Nil), errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded), errors.Is(err, redis.ErrClosed):
			return err
		default:
			return retry.RetryableError(err)
		}
	})
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.do(ctx, func(ctx context.Context) error {
		v, err := b.client.Get(ctx, b.key(key)).Bytes()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return out, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	err := b.do(ctx, func(ctx context.Context) error {
		return b.client.Set(ctx, b.key(key), value, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	var written bool
	err := b.do(ctx, func(ctx context.Context) error {
		ok, err := b.client.SetNX(ctx, b.key(key), value, 0).Result()
		if err != nil {
			return err
		}
		written = ok
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis setnx %q: %w", key, err)
	}
	return written, nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	err := b.do(ctx, func(ctx context.Context) error {
		return b.client.Del(ctx, b.key(key)).Err()
	})
	if err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the backend's prefix. Keys outside the
// prefix are untouched.
func (b *RedisBackend) Clear(ctx context.Context) error {
	pattern := b.scopePattern()
	var cursor uint64
	for {
		var keys []string
		var next uint64
		err := b.do(ctx, func(ctx context.Context) error {
			var err error
			keys, next, err = b.client.Scan(ctx, cursor, pattern, b.scanCount).Result()
			return err
		})
		if err != nil {
			return fmt.Errorf("redis scan %q: %w", pattern, err)
		}
		if len(keys) > 0 {
			err := b.do(ctx, func(ctx context.Context) error {
				return b.client.Del(ctx, keys...).Err()
			})
			if err != nil {
				return fmt.Errorf("redis clear %q: %w", pattern, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the underlying client. Subsequent calls are no-ops.
func (b *RedisBackend) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	return b.client.Close()
}
