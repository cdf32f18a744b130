package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Search   SearchConfig   `mapstructure:"search"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

const defaultConfigFile = "./configs/config.yaml"

type section interface {
	setDefaults()
	bindEnvironmentVariables() error
}

func Get() *Config {

	// .env is optional, real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	configFile := defaultConfigFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.Reset()
	viper.SetConfigFile(file)

	var errs []error
	for name, s := range sections() {
		s.setDefaults()
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func sections() map[string]section {
	return map[string]section{
		"ServerConfig":   ServerConfig{},
		"UpstreamConfig": UpstreamConfig{},
		"SearchConfig":   SearchConfig{},
		"CacheConfig":    CacheConfig{},
		"LoggerConfig":   LoggerConfig{},
	}
}

func (config Config) validate() error {
	var errs []error

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Upstream.validate(); err != nil {
		errs = append(errs, fmt.Errorf("UpstreamConfig: %w", err))
	}

	if err := config.Cache.validate(); err != nil {
		errs = append(errs, fmt.Errorf("CacheConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
