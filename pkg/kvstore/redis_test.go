package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/compozy/toolkit/engine/infra/cache"
	"github.com/compozy/toolkit/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisBackend(t *testing.T, prefix string) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b, err := NewRedisBackend(client, prefix, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

// flakyClient fails the first n GET commands with a transient error.
type flakyClient struct {
	cache.RedisClient
	failures atomic.Int32
	calls    atomic.Int32
}

func (f *flakyClient) Get(ctx context.Context, key string) *redis.StringCmd {
	f.calls.Add(1)
	if f.failures.Add(-1) >= 0 {
		return redis.NewStringResult("", errors.New("connection reset by peer"))
	}
	return f.RedisClient.Get(ctx, key)
}

func TestRedisBackend(t *testing.T) {
	t.Run("Should store values under the prefix", func(t *testing.T) {
		ctx := t.Context()
		b, mr := newTestRedisBackend(t, "app")

		require.NoError(t, b.Set(ctx, "theme", []byte(`"dark"`)))

		v, err := mr.Get("app:theme")
		require.NoError(t, err)
		assert.Equal(t, `"dark"`, v)
		got, err := b.Get(ctx, "theme")
		require.NoError(t, err)
		assert.Equal(t, `"dark"`, string(got))
	})

	t.Run("Should map a missing key to ErrNotFound", func(t *testing.T) {
		b, _ := newTestRedisBackend(t, "app")

		_, err := b.Get(t.Context(), "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Should write with SetNX only once", func(t *testing.T) {
		ctx := t.Context()
		b, _ := newTestRedisBackend(t, "app")

		first, err := b.SetNX(ctx, "k", []byte("1"))
		require.NoError(t, err)
		second, err := b.SetNX(ctx, "k", []byte("2"))
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
		got, err := b.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
	})

	t.Run("Should clear only keys under its prefix", func(t *testing.T) {
		ctx := t.Context()
		b, mr := newTestRedisBackend(t, "app")
		for i := range 250 {
			require.NoError(t, b.Set(ctx, fmt.Sprintf("k%d", i), []byte("1")))
		}
		require.NoError(t, mr.Set("other:k", "keep"))
		require.NoError(t, mr.Set("application", "keep"))

		require.NoError(t, b.Clear(ctx))

		assert.ElementsMatch(t, []string{"other:k", "application"}, mr.Keys())
	})

	t.Run("Should delete keys and ignore absent ones", func(t *testing.T) {
		ctx := t.Context()
		b, mr := newTestRedisBackend(t, "app")
		require.NoError(t, b.Set(ctx, "k", []byte("1")))

		require.NoError(t, b.Delete(ctx, "k"))
		require.NoError(t, b.Delete(ctx, "k"))

		assert.False(t, mr.Exists("app:k"))
	})

	t.Run("Should retry transient failures", func(t *testing.T) {
		ctx := t.Context()
		mr := miniredis.RunT(t)
		flaky := &flakyClient{RedisClient: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
		flaky.failures.Store(2)
		b, err := NewRedisBackend(flaky, "app", &config.RetryConfig{MaxAttempts: 3, Backoff: time.Millisecond})
		require.NoError(t, err)
		defer b.Close()
		require.NoError(t, mr.Set("app:k", "1"))

		got, err := b.Get(ctx, "k")

		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
		assert.Equal(t, int32(3), flaky.calls.Load())
	})

	t.Run("Should give up after the configured attempts", func(t *testing.T) {
		ctx := t.Context()
		mr := miniredis.RunT(t)
		flaky := &flakyClient{RedisClient: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
		flaky.failures.Store(10)
		b, err := NewRedisBackend(flaky, "app", &config.RetryConfig{MaxAttempts: 2, Backoff: time.Millisecond})
		require.NoError(t, err)
		defer b.Close()

		_, err = b.Get(ctx, "k")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset by peer")
		assert.Equal(t, int32(2), flaky.calls.Load())
	})

	t.Run("Should fail after Close", func(t *testing.T) {
		b, _ := newTestRedisBackend(t, "app")
		require.NoError(t, b.Close())

		_, err := b.Get(t.Context(), "k")

		assert.ErrorIs(t, err, ErrClosed)
	})

	t.Run("Should escape glob characters in the scope pattern", func(t *testing.T) {
		b := &RedisBackend{prefix: "a*b"}
		assert.Equal(t, `a\*b:*`, b.scopePattern())
		b.prefix = ""
		assert.Equal(t, "*", b.scopePattern())
	})

	t.Run("Should reject a nil client", func(t *testing.T) {
		_, err := NewRedisBackend(nil, "app", nil)
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	t.Run("Should open a memory store by default", func(t *testing.T) {
		ctx := newTestContext(t)
		cfg := config.Default().Storage

		s, err := Open(ctx, &cfg)
		require.NoError(t, err)
		defer s.Close()

		assert.IsType(t, &InstrumentedBackend{}, s.Backend())
	})

	t.Run("Should open a cached redis store", func(t *testing.T) {
		ctx := newTestContext(t)
		mr := miniredis.RunT(t)
		cfg := config.Default().Storage
		cfg.Driver = DriverRedis
		cfg.Prefix = "toolbox"
		cfg.Redis.URL = "redis://" + mr.Addr()
		cfg.Cache.Enabled = true

		s, err := Open(ctx, &cfg)
		require.NoError(t, err)
		defer s.Close()

		assert.IsType(t, &CachedBackend{}, s.Backend())
		require.NoError(t, s.Set(ctx, "k", []int{1, 2}))
		v, err := mr.Get("toolbox:k")
		require.NoError(t, err)
		assert.Equal(t, "[1,2]", v)
	})

	t.Run("Should reject unknown drivers", func(t *testing.T) {
		cfg := config.Default().Storage
		cfg.Driver = "etcd"

		_, err := Open(newTestContext(t), &cfg)

		assert.ErrorContains(t, err, "unsupported storage driver")
	})
}
