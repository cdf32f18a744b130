package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type UpstreamConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	CompanyID            string        `mapstructure:"company_id"`
	Country              string        `mapstructure:"country"`
	PageSize             int           `mapstructure:"page_size"`
	MaxRecords           int           `mapstructure:"max_records"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
}

func (config UpstreamConfig) validate() error {
	var errs []error

	if u, err := url.Parse(config.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base_url: %q", config.BaseURL))
	}
	if config.CompanyID == "" {
		errs = append(errs, fmt.Errorf("missing variable: company_id"))
	}
	if len(config.Country) != 2 {
		errs = append(errs, fmt.Errorf("country must be a two-letter code: %q", config.Country))
	}
	if config.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive"))
	}
	if config.MaxRecords < config.PageSize {
		errs = append(errs, fmt.Errorf("max_records must not be less than page_size"))
	}
	if config.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive"))
	}
	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must not be negative"))
	}

	return errors.Join(errs...)
}

func (config UpstreamConfig) setDefaults() {
	viper.SetDefault("upstream.base_url", "https://api.smartrecruiters.com/v1/companies")
	viper.SetDefault("upstream.company_id", "BoschGroup")
	viper.SetDefault("upstream.country", "br")
	viper.SetDefault("upstream.page_size", 100)
	viper.SetDefault("upstream.max_records", 1000)
	viper.SetDefault("upstream.timeout", 15*time.Second)
	viper.SetDefault("upstream.max_requests_per_second", 0)
}

func (config UpstreamConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"upstream.base_url":                "UPSTREAM_BASE_URL",
		"upstream.company_id":              "COMPANY_ID",
		"upstream.country":                 "UPSTREAM_COUNTRY",
		"upstream.timeout":                 "UPSTREAM_TIMEOUT",
		"upstream.max_requests_per_second": "UPSTREAM_MAX_REQUESTS_PER_SECOND",
	})
}
