package config

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvMappings(t *testing.T) {
	t.Run("Should map tagged fields to nested config paths", func(t *testing.T) {
		m := GenerateEnvToConfigMap()

		assert.Equal(t, "storage.driver", m["TOOLBOX_STORAGE_DRIVER"])
		assert.Equal(t, "storage.redis.url", m["TOOLBOX_REDIS_URL"])
		assert.Equal(t, "timer.throttle_interval", m["TOOLBOX_TIMER_THROTTLE_INTERVAL"])
	})

	t.Run("Should flag secrets as sensitive", func(t *testing.T) {
		assert.True(t, IsSensitiveConfigPath("storage.redis.password"))
		assert.False(t, IsSensitiveConfigPath("storage.redis.url"))
		assert.False(t, IsSensitiveConfigPath("storage.unknown"))
	})
}

func TestCLIProvider(t *testing.T) {
	t.Run("Should nest known flags and skip unknown ones", func(t *testing.T) {
		data, err := NewCLIProvider(map[string]any{
			"storage-driver": "redis",
			"redis-url":      "redis://x",
			"verbose":        true,
		}).Load()

		require.NoError(t, err)
		storage := data["storage"].(map[string]any)
		assert.Equal(t, "redis", storage["driver"])
		assert.Equal(t, "redis://x", storage["redis"].(map[string]any)["url"])
		assert.NotContains(t, data, "verbose")
	})

	t.Run("Should report conflicts between scalar and nested paths", func(t *testing.T) {
		m := map[string]any{"storage": "flat"}
		assert.Error(t, setNested(m, "storage.driver", "redis"))
	})
}

func TestYAMLProvider(t *testing.T) {
	t.Run("Should return empty config for missing files", func(t *testing.T) {
		data, err := NewYAMLProvider("/nonexistent/toolbox.yaml").Load()
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Should drop nil values", func(t *testing.T) {
		out := filterNilValues(map[string]any{"a": nil, "b": map[string]any{"c": nil}, "d": 1})
		assert.Equal(t, map[string]any{"d": 1}, out)
	})
}

func TestSensitiveString(t *testing.T) {
	t.Run("Should redact non-empty values", func(t *testing.T) {
		assert.Equal(t, "[REDACTED]", SensitiveString("secret").String())
		assert.Equal(t, "", SensitiveString("").String())
	})

	t.Run("Should marshal as redacted string", func(t *testing.T) {
		bs, err := json.Marshal(struct {
			Password SensitiveString `json:"password"`
		}{Password: "secret"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"password":"[REDACTED]"}`, string(bs))
	})

	t.Run("Should unmarshal string values", func(t *testing.T) {
		var s SensitiveString
		require.NoError(t, json.Unmarshal([]byte(`"secret-value"`), &s))
		assert.Equal(t, "secret-value", s.Value())
	})
}

func TestContext(t *testing.T) {
	t.Run("Should return stored configuration", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Prefix = "ctx"
		assert.Same(t, cfg, FromContext(ContextWithConfig(context.Background(), cfg)))
	})

	t.Run("Should fall back to defaults", func(t *testing.T) {
		assert.Equal(t, Default(), FromContext(context.Background()))
	})
}
