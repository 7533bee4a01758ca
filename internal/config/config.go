// Package config loads application configuration with Viper: defaults,
// then ~/.datascope/config.yaml, then DATASCOPE_* environment variables.
// Command-line flags are bound on top by the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/abelbrown/datascope/internal/view"
)

// Config keys.
const (
	KeyAPIURL   = "api_url"
	KeyTimeout  = "timeout"
	KeyPageSize = "page_size"
	KeyLogLevel = "log_level"
)

// Defaults.
const (
	DefaultAPIURL   = "https://dummyjson.com"
	DefaultTimeout  = 15 * time.Second
	DefaultLogLevel = "info"
)

// Config holds the resolved application configuration.
type Config struct {
	APIBaseURL string
	Timeout    time.Duration
	PageSize   int
	LogLevel   string
	DataDir    string
}

// DataDir returns the per-user data directory (~/.datascope).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".datascope"), nil
}

// New returns a viper instance seeded with defaults and env bindings.
// Exposed so the CLI can bind flags onto it before Resolve.
func New(dataDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyPageSize, view.DefaultPageSize)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetEnvPrefix("DATASCOPE")
	v.AutomaticEnv()

	return v
}

// Resolve reads the config file (a missing file is not an error) and
// validates the result.
func Resolve(v *viper.Viper, dataDir string) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// A missing config.yaml is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		APIBaseURL: v.GetString(KeyAPIURL),
		Timeout:    v.GetDuration(KeyTimeout),
		PageSize:   v.GetInt(KeyPageSize),
		LogLevel:   v.GetString(KeyLogLevel),
		DataDir:    dataDir,
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_url must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if !view.ValidPageSize(cfg.PageSize) {
		return nil, fmt.Errorf("page_size must be one of %v, got %d", view.PageSizes, cfg.PageSize)
	}
	return cfg, nil
}

// Load resolves configuration from the default data directory.
func Load() (*Config, error) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return Resolve(New(dataDir), dataDir)
}
