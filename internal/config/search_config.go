package config

import "github.com/spf13/viper"

type SearchConfig struct {
	DefaultCity string `mapstructure:"default_city"`
}

func (config SearchConfig) setDefaults() {
	viper.SetDefault("search.default_city", "Campinas")
}

func (config SearchConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("search.default_city", "SEARCH_DEFAULT_CITY")
}
