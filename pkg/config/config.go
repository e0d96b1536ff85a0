package config

import (
	"context"
	"time"
)

// Config represents the complete configuration for the toolkit.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
	Storage StorageConfig `koanf:"storage" validate:"required"`
	Timer   TimerConfig   `koanf:"timer"`
}

// RuntimeConfig contains process-level behavior such as logging.
type RuntimeConfig struct {
	LogLevel  string `koanf:"log_level"  validate:"oneof=debug info warn error disabled" env:"TOOLBOX_LOG_LEVEL"`
	LogJSON   bool   `koanf:"log_json"                                                   env:"TOOLBOX_LOG_JSON"`
	LogSource bool   `koanf:"log_source"                                                 env:"TOOLBOX_LOG_SOURCE"`
}

// StorageConfig selects and tunes the key-value store backend.
type StorageConfig struct {
	Driver string             `koanf:"driver" validate:"oneof=memory redis" env:"TOOLBOX_STORAGE_DRIVER"`
	Prefix string             `koanf:"prefix" validate:"key_prefix"         env:"TOOLBOX_STORAGE_PREFIX"`
	Memory MemoryConfig       `koanf:"memory"`
	Redis  RedisConfig        `koanf:"redis"`
	Cache  StorageCacheConfig `koanf:"cache"`
	Retry  RetryConfig        `koanf:"retry"`
}

// MemoryConfig bounds the in-process backend.
type MemoryConfig struct {
	Capacity int `koanf:"capacity" validate:"min=1" env:"TOOLBOX_STORAGE_MEMORY_CAPACITY"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	URL          string          `koanf:"url"           env:"TOOLBOX_REDIS_URL"`
	Host         string          `koanf:"host"          env:"TOOLBOX_REDIS_HOST"`
	Port         string          `koanf:"port"          env:"TOOLBOX_REDIS_PORT"`
	Password     SensitiveString `koanf:"password"      env:"TOOLBOX_REDIS_PASSWORD"      sensitive:"true"`
	DB           int             `koanf:"db"            env:"TOOLBOX_REDIS_DB"            validate:"min=0"`
	PoolSize     int             `koanf:"pool_size"     env:"TOOLBOX_REDIS_POOL_SIZE"     validate:"min=0"`
	DialTimeout  time.Duration   `koanf:"dial_timeout"  env:"TOOLBOX_REDIS_DIAL_TIMEOUT"`
	ReadTimeout  time.Duration   `koanf:"read_timeout"  env:"TOOLBOX_REDIS_READ_TIMEOUT"`
	WriteTimeout time.Duration   `koanf:"write_timeout" env:"TOOLBOX_REDIS_WRITE_TIMEOUT"`
	PingTimeout  time.Duration   `koanf:"ping_timeout"  env:"TOOLBOX_REDIS_PING_TIMEOUT"`
	TLSEnabled   bool            `koanf:"tls_enabled"   env:"TOOLBOX_REDIS_TLS_ENABLED"`
}

// StorageCacheConfig configures the read-through cache in front of the backend.
type StorageCacheConfig struct {
	Enabled     bool          `koanf:"enabled"      env:"TOOLBOX_STORAGE_CACHE_ENABLED"`
	NumCounters int64         `koanf:"num_counters" env:"TOOLBOX_STORAGE_CACHE_NUM_COUNTERS" validate:"min=1"`
	MaxCost     int64         `koanf:"max_cost"     env:"TOOLBOX_STORAGE_CACHE_MAX_COST"     validate:"min=1"`
	TTL         time.Duration `koanf:"ttl"          env:"TOOLBOX_STORAGE_CACHE_TTL"`
}

// RetryConfig controls retries of transient backend failures.
type RetryConfig struct {
	MaxAttempts uint64        `koanf:"max_attempts" env:"TOOLBOX_STORAGE_RETRY_MAX_ATTEMPTS"`
	Backoff     time.Duration `koanf:"backoff"      env:"TOOLBOX_STORAGE_RETRY_BACKOFF"`
}

// TimerConfig holds defaults for debounce and throttle helpers.
type TimerConfig struct {
	DebounceWait     time.Duration `koanf:"debounce_wait"     env:"TOOLBOX_TIMER_DEBOUNCE_WAIT"`
	DebounceMaxWait  time.Duration `koanf:"debounce_max_wait" env:"TOOLBOX_TIMER_DEBOUNCE_MAX_WAIT"`
	ThrottleInterval time.Duration `koanf:"throttle_interval" env:"TOOLBOX_TIMER_THROTTLE_INTERVAL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			LogLevel: "info",
		},
		Storage: StorageConfig{
			Driver: "memory",
			Prefix: "toolbox",
			Memory: MemoryConfig{Capacity: 10_000},
			Redis: RedisConfig{
				Host:         "localhost",
				Port:         "6379",
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
				PingTimeout:  10 * time.Second,
			},
			Cache: StorageCacheConfig{
				NumCounters: 10_000,
				MaxCost:     1 << 20,
			},
			Retry: RetryConfig{
				MaxAttempts: 3,
				Backoff:     50 * time.Millisecond,
			},
		},
		Timer: TimerConfig{
			DebounceWait:     250 * time.Millisecond,
			ThrottleInterval: time.Second,
		},
	}
}

// Service defines the interface for configuration loading.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Load loads configuration using the default service.
// This is a convenience function for simple configuration loading.
func Load(ctx context.Context, sources ...Source) (*Config, error) {
	return NewService().Load(ctx, sources...)
}
