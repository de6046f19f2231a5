package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		Port:                 "8080",
		LogLevel:             "ERROR",
		LinkCheckConcurrency: 10,
		LinkCheckRPS:         20,
		LinkCheckTimeout:     5 * time.Second,
		FetchTimeout:         10 * time.Second,
		FetchMaxRedirects:    5,
		FetchRetryMax:        2,
		MaxWords:             1200,
		SchemaCap:            1024,
	}, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LINK_CHECK_CONCURRENCY", "25")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("MAX_WORDS", "800")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 25, cfg.LinkCheckConcurrency)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 800, cfg.MaxWords)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"port not a number", "PORT", "http", errInvalidPort},
		{"port out of range", "PORT", "70000", errInvalidPort},
		{"concurrency zero", "LINK_CHECK_CONCURRENCY", "0", errConcurrencyOutOfRange},
		{"concurrency too high", "LINK_CHECK_CONCURRENCY", "101", errConcurrencyOutOfRange},
		{"zero timeout", "FETCH_TIMEOUT", "0s", errNonPositive},
		{"zero max words", "MAX_WORDS", "0", errNonPositive},
		{"negative rps", "LINK_CHECK_RPS", "-1", errNegative},
		{"negative retries", "FETCH_RETRY_MAX", "-1", errNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unparseable", func(t *testing.T) {
		t.Setenv("LINK_CHECK_CONCURRENCY", "ten")
		_, err := Load()
		require.Error(t, err)
	})
}
