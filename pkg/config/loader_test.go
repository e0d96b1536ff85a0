package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
	err        error
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, m.err
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		cfg, err := NewService().Load(context.Background())

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "memory", cfg.Storage.Driver)
		assert.Equal(t, "toolbox", cfg.Storage.Prefix)
		assert.Equal(t, 10_000, cfg.Storage.Memory.Capacity)
		assert.Equal(t, 250*time.Millisecond, cfg.Timer.DebounceWait)
		assert.Equal(t, "info", cfg.Runtime.LogLevel)
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		yamlSource := &mockSource{
			data: map[string]any{
				"storage": map[string]any{
					"prefix": "from-yaml",
					"memory": map[string]any{"capacity": 50},
				},
			},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data: map[string]any{
				"storage": map[string]any{"prefix": "from-cli"},
			},
			sourceType: SourceCLI,
		}

		loader := NewService()
		cfg, err := loader.Load(context.Background(), cliSource, yamlSource)

		require.NoError(t, err)
		assert.Equal(t, "from-cli", cfg.Storage.Prefix)
		assert.Equal(t, 50, cfg.Storage.Memory.Capacity)
		assert.Equal(t, SourceCLI, loader.GetSource("storage.prefix"))
		assert.Equal(t, SourceYAML, loader.GetSource("storage.memory.capacity"))
		assert.Equal(t, SourceDefault, loader.GetSource("storage.driver"))
	})

	t.Run("Should let environment override YAML but not CLI", func(t *testing.T) {
		t.Setenv("TOOLBOX_STORAGE_PREFIX", "from-env")
		t.Setenv("TOOLBOX_TIMER_DEBOUNCE_WAIT", "2s")
		yamlSource := &mockSource{
			data:       map[string]any{"storage": map[string]any{"prefix": "from-yaml"}},
			sourceType: SourceYAML,
		}

		loader := NewService()
		cfg, err := loader.Load(context.Background(), yamlSource)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Storage.Prefix)
		assert.Equal(t, 2*time.Second, cfg.Timer.DebounceWait)
		assert.Equal(t, SourceEnv, loader.GetSource("storage.prefix"))

		cli := NewCLIProvider(map[string]any{"prefix": "from-cli"})
		cfg, err = loader.Load(context.Background(), yamlSource, cli)
		require.NoError(t, err)
		assert.Equal(t, "from-cli", cfg.Storage.Prefix)
	})

	t.Run("Should decode sensitive values from the environment", func(t *testing.T) {
		t.Setenv("TOOLBOX_REDIS_PASSWORD", "hunter2")

		cfg, err := NewService().Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "hunter2", cfg.Storage.Redis.Password.Value())
		assert.Equal(t, "[REDACTED]", cfg.Storage.Redis.Password.String())
	})

	t.Run("Should propagate source errors", func(t *testing.T) {
		_, err := NewService().Load(context.Background(), &mockSource{err: os.ErrPermission, sourceType: SourceYAML})

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("Should load a YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "toolbox.yaml")
		content := "storage:\n  driver: redis\n  redis:\n    url: redis://localhost:6379/1\n  cache:\n    enabled: true\n    ttl: 30s\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := NewService().Load(context.Background(), NewYAMLProvider(path))

		require.NoError(t, err)
		assert.Equal(t, "redis", cfg.Storage.Driver)
		assert.Equal(t, "redis://localhost:6379/1", cfg.Storage.Redis.URL)
		assert.True(t, cfg.Storage.Cache.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Storage.Cache.TTL)
	})
}

func TestLoader_Validate(t *testing.T) {
	t.Run("Should reject unknown storage drivers", func(t *testing.T) {
		cli := NewCLIProvider(map[string]any{"storage-driver": "etcd"})

		_, err := NewService().Load(context.Background(), cli)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Driver")
	})

	t.Run("Should reject prefixes containing glob characters", func(t *testing.T) {
		for _, prefix := range []string{"app*", "a b", "", "trailing:"} {
			cfg := Default()
			cfg.Storage.Prefix = prefix
			assert.Error(t, NewService().Validate(cfg), "prefix %q", prefix)
		}
	})

	t.Run("Should accept namespaced prefixes", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Prefix = "app:settings"
		assert.NoError(t, NewService().Validate(cfg))
	})

	t.Run("Should require redis host and port without url", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Driver = "redis"
		cfg.Storage.Redis.Host = ""

		err := NewService().Validate(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis configuration incomplete")
	})

	t.Run("Should reject a debounce max wait shorter than the wait", func(t *testing.T) {
		cfg := Default()
		cfg.Timer.DebounceWait = time.Second
		cfg.Timer.DebounceMaxWait = time.Millisecond

		assert.Error(t, NewService().Validate(cfg))
	})

	t.Run("Should reject nil configuration", func(t *testing.T) {
		assert.Error(t, NewService().Validate(nil))
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should convert unmapped variables to dotted paths", func(t *testing.T) {
		assert.Equal(t, "timer.debounce_wait", transformEnvKey("TOOLBOX_TIMER_DEBOUNCE_WAIT"))
		assert.Equal(t, "storage", transformEnvKey("TOOLBOX_STORAGE"))
		assert.Equal(t, "", transformEnvKey("TOOLBOX_"))
	})
}
