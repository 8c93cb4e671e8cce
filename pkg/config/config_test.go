package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.Telegram.PollTimeout)
	assert.Equal(t, 60, cfg.Scraper.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Scraper.MaxRetries)
	assert.Equal(t, 3, cfg.Download.ConcurrentFetches)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Scraper.UserAgent)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PINPAGER_TELEGRAM_TOKEN", "123456:ABC-DEF")
	t.Setenv("PINPAGER_REQUESTS_PER_MINUTE", "30")
	t.Setenv("PINPAGER_CONCURRENT_FETCHES", "5")
	t.Setenv("PINPAGER_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "123456:ABC-DEF", cfg.Telegram.Token)
	assert.Equal(t, 30, cfg.Scraper.RequestsPerMinute)
	assert.Equal(t, 5, cfg.Download.ConcurrentFetches)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("PINPAGER_REQUESTS_PER_MINUTE", "not-a-number")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 60, cfg.Scraper.RequestsPerMinute)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `telegram:
  token: file-token
  poll_timeout: 45
scraper:
  requests_per_minute: 20
  timeout: 10s
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, 45, cfg.Telegram.PollTimeout)
	assert.Equal(t, 20, cfg.Scraper.RequestsPerMinute)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// untouched sections keep their defaults
	assert.Equal(t, 3, cfg.Download.ConcurrentFetches)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero poll timeout", mutate: func(c *Config) { c.Telegram.PollTimeout = 0 }, wantErr: true},
		{name: "zero rpm", mutate: func(c *Config) { c.Scraper.RequestsPerMinute = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Scraper.MaxRetries = -1 }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Download.ConcurrentFetches = 0 }, wantErr: true},
		{name: "excessive concurrency", mutate: func(c *Config) { c.Download.ConcurrentFetches = 11 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"token":      "flag-token",
		"rate-limit": 15,
		"log-level":  "error",
	})

	assert.Equal(t, "flag-token", cfg.Telegram.Token)
	assert.Equal(t, 15, cfg.Scraper.RequestsPerMinute)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved", "config.yaml")

	cfg := DefaultConfig()
	cfg.Telegram.Token = "saved-token"
	require.NoError(t, cfg.Save(path))

	reloaded := DefaultConfig()
	require.NoError(t, reloaded.LoadFromFile(path))
	assert.Equal(t, "saved-token", reloaded.Telegram.Token)
}
