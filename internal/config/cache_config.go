package config

import (
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"time"
)

type CacheBackend string

const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheRedis  CacheBackend = "redis"
)

type CacheConfig struct {
	Backend         CacheBackend  `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshSchedule string        `mapstructure:"refresh_schedule"`
	RefreshTimeout  time.Duration `mapstructure:"refresh_timeout"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// Enabled reports whether raw postings are cached at all.
func (config CacheConfig) Enabled() bool {
	return config.Backend != CacheNone && config.TTL > 0
}

func (config CacheConfig) validate() error {
	var errs []error

	switch config.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if config.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("missing variable: redis_addr"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend: %q", config.Backend))
	}

	if config.TTL < 0 {
		errs = append(errs, fmt.Errorf("ttl must not be negative"))
	}

	if config.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(config.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid refresh_schedule: %w", err))
		}
		if config.RefreshTimeout <= 0 {
			errs = append(errs, fmt.Errorf("refresh_timeout must be positive"))
		}
	}

	return errors.Join(errs...)
}

func (config CacheConfig) setDefaults() {
	viper.SetDefault("cache.backend", string(CacheMemory))
	viper.SetDefault("cache.ttl", 5*time.Minute)
	viper.SetDefault("cache.refresh_schedule", "")
	viper.SetDefault("cache.refresh_timeout", time.Minute)
	viper.SetDefault("cache.redis_db", 0)
}

func (config CacheConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"cache.backend":          "CACHE_BACKEND",
		"cache.ttl":              "CACHE_TTL",
		"cache.refresh_schedule": "CACHE_REFRESH_SCHEDULE",
		"cache.redis_addr":       "REDIS_ADDR",
		"cache.redis_password":   "REDIS_PASSWORD",
		"cache.redis_db":         "REDIS_DB",
	})
}
