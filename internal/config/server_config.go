package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"slices"
	"time"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Env             Environment   `mapstructure:"env"`
	StaticDir       string        `mapstructure:"static_dir"`
	Version         string        `mapstructure:"version"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (config ServerConfig) IsDevelopment() bool {
	return config.Env == Development
}

func (config ServerConfig) Address() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if !slices.Contains([]Environment{Development, Production}, config.Env) {
		errs = append(errs, fmt.Errorf("invalid env: %q", config.Env))
	}
	if config.StaticDir == "" {
		errs = append(errs, fmt.Errorf("missing variable: static_dir"))
	}

	return errors.Join(errs...)
}

func (config ServerConfig) setDefaults() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.env", string(Production))
	viper.SetDefault("server.static_dir", "./public")
	viper.SetDefault("server.version", "1.0.0")
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"server.port":       "PORT",
		"server.env":        "ENV",
		"server.static_dir": "STATIC_DIR",
	})
}
