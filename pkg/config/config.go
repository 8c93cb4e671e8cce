package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Pinterest paging bot
type Config struct {
	// Telegram bot settings
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`

	// Scraper settings for profile page fetching
	Scraper ScraperConfig `yaml:"scraper" json:"scraper"`

	// Image download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TelegramConfig holds Telegram-specific configuration
type TelegramConfig struct {
	Token       string `yaml:"token" json:"token"`
	PollTimeout int    `yaml:"poll_timeout" json:"poll_timeout"`
	Debug       bool   `yaml:"debug" json:"debug"`
}

// ScraperConfig holds profile scraping configuration
type ScraperConfig struct {
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
}

// DownloadConfig holds image download configuration
type DownloadConfig struct {
	ConcurrentFetches int           `yaml:"concurrent_fetches" json:"concurrent_fetches"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 30,
			Debug:       false,
		},
		Scraper: ScraperConfig{
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			Timeout:           20 * time.Second,
			RequestsPerMinute: 60,
			MaxRetries:        3,
		},
		Download: DownloadConfig{
			ConcurrentFetches: 3,
			FetchTimeout:      30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("PINPAGER_TELEGRAM_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if timeout := os.Getenv("PINPAGER_POLL_TIMEOUT"); timeout != "" {
		var val int
		fmt.Sscanf(timeout, "%d", &val)
		if val > 0 {
			c.Telegram.PollTimeout = val
		}
	}
	if userAgent := os.Getenv("PINPAGER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}
	if rpm := os.Getenv("PINPAGER_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.Scraper.RequestsPerMinute = val
		}
	}
	if concurrent := os.Getenv("PINPAGER_CONCURRENT_FETCHES"); concurrent != "" {
		var val int
		fmt.Sscanf(concurrent, "%d", &val)
		if val > 0 {
			c.Download.ConcurrentFetches = val
		}
	}
	if logLevel := os.Getenv("PINPAGER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".pinpager.yaml",
		".pinpager.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "pinpager", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".pinpager.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Telegram.PollTimeout <= 0 {
		errs = append(errs, errors.New("poll timeout must be positive"))
	}

	if c.Scraper.Timeout <= 0 {
		errs = append(errs, errors.New("scraper timeout must be positive"))
	}
	if c.Scraper.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.Scraper.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	if c.Download.ConcurrentFetches <= 0 {
		errs = append(errs, errors.New("concurrent fetches must be positive"))
	}
	if c.Download.ConcurrentFetches > 10 {
		errs = append(errs, errors.New("concurrent fetches should not exceed 10"))
	}
	if c.Download.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["token"].(string); ok && token != "" {
		c.Telegram.Token = token
	}
	if pollTimeout, ok := flags["poll-timeout"].(int); ok && pollTimeout > 0 {
		c.Telegram.PollTimeout = pollTimeout
	}
	if concurrent, ok := flags["concurrent"].(int); ok && concurrent > 0 {
		c.Download.ConcurrentFetches = concurrent
	}
	if rpm, ok := flags["rate-limit"].(int); ok && rpm > 0 {
		c.Scraper.RequestsPerMinute = rpm
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pinpager.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
