// Package config handles configuration loading and validation for runhub.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the backend base URL when nothing else is configured.
const DefaultAPIURL = "http://localhost:5050"

// Config holds the application configuration.
type Config struct {
	// APIURL is the backend base URL (scheme://host:port, no trailing slash).
	APIURL string `yaml:"api_url"`
	// RequestTimeoutSeconds bounds every backend call.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	// PageSize is the number of runs per page in list views.
	PageSize int `yaml:"page_size"`
	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:                DefaultAPIURL,
		RequestTimeoutSeconds: 15,
		PageSize:              10,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir. The RUNHUB_API_URL environment variable overrides api_url.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if env := os.Getenv("RUNHUB_API_URL"); env != "" {
		cfg.APIURL = env
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}
	if c.PageSize == 0 {
		c.PageSize = defaults.PageSize
	}
}

// IdentityFile returns the path to the persisted identity file.
func (c *Config) IdentityFile() string {
	return filepath.Join(c.DataDir, "identity.json")
}
