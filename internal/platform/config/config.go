package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: LINK_CHECK_CONCURRENCY must be 1-100")
	errNonPositive           = errors.New("config: value must be positive")
	errNegative              = errors.New("config: value must not be negative")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"ERROR"`

	LinkCheckConcurrency int           `envconfig:"LINK_CHECK_CONCURRENCY" default:"10"`
	LinkCheckRPS         float64       `envconfig:"LINK_CHECK_RPS" default:"20"`
	LinkCheckTimeout     time.Duration `envconfig:"LINK_CHECK_TIMEOUT" default:"5s"`

	FetchTimeout      time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	FetchMaxRedirects int           `envconfig:"FETCH_MAX_REDIRECTS" default:"5"`
	FetchRetryMax     int           `envconfig:"FETCH_RETRY_MAX" default:"2"`

	MaxWords  int `envconfig:"MAX_WORDS" default:"1200"`
	SchemaCap int `envconfig:"SCHEMA_CAP" default:"1024"`
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LinkCheckConcurrency < 1 || c.LinkCheckConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.LinkCheckConcurrency)
	}

	for _, v := range []struct {
		name  string
		value float64
	}{
		{"LINK_CHECK_TIMEOUT", float64(c.LinkCheckTimeout)},
		{"FETCH_TIMEOUT", float64(c.FetchTimeout)},
		{"FETCH_MAX_REDIRECTS", float64(c.FetchMaxRedirects)},
		{"MAX_WORDS", float64(c.MaxWords)},
		{"SCHEMA_CAP", float64(c.SchemaCap)},
	} {
		if v.value <= 0 {
			return fmt.Errorf("%w: %s", errNonPositive, v.name)
		}
	}

	if c.LinkCheckRPS < 0 {
		return fmt.Errorf("%w: LINK_CHECK_RPS", errNegative)
	}
	if c.FetchRetryMax < 0 {
		return fmt.Errorf("%w: FETCH_RETRY_MAX", errNegative)
	}

	return nil
}
