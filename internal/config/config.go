// Package config resolves runtime settings from defaults, an optional YAML
// file, environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var ErrUnknownBackend = errors.New("unknown store backend")

type Config struct {
	Port               string `mapstructure:"port"`
	StoreBackend       string `mapstructure:"store_backend"`
	DatabaseURL        string `mapstructure:"database_url"`
	RedisAddr          string `mapstructure:"redis_addr"`
	RedisKey           string `mapstructure:"redis_key"`
	SeedDefaults       bool   `mapstructure:"seed_defaults"`
	TemplatesDir       string `mapstructure:"templates_dir"`
	MetricsEnabled     bool   `mapstructure:"metrics_enabled"`
	MetricsToken       string `mapstructure:"metrics_token"`
	AddRateLimitPerMin int    `mapstructure:"add_rate_limit_per_min"`
	LogFile            string `mapstructure:"log_file"`
}

// SetDefaults registers every key so that AutomaticEnv can resolve it during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("store_backend", BackendMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_key", "inventario:products")
	v.SetDefault("seed_defaults", true)
	v.SetDefault("templates_dir", "")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("metrics_token", "")
	v.SetDefault("add_rate_limit_per_min", 0)
	v.SetDefault("log_file", "")
}

// Load reads file when it is not empty and returns the merged configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	if c.AddRateLimitPerMin < 0 {
		return errors.New("add_rate_limit_per_min must not be negative")
	}
	return nil
}
