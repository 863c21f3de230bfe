// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Credentials
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	AdzunaAppID  string `json:"adzuna_app_id,omitempty"`  // Adzuna application ID
	AdzunaAppKey string `json:"adzuna_app_key,omitempty"` // Adzuna application key

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Generation behavior
	QualityThreshold int `json:"quality_threshold,omitempty"` // Minimum acceptable score (0-100)
	MaxIterations    int `json:"max_iterations,omitempty"`    // Generation retry budget

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Values loaded here are
// used as defaults under any config file.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		AdzunaAppID:  os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey: os.Getenv("ADZUNA_APP_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}
	if v := os.Getenv("QUALITY_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.QualityThreshold = n
		}
	}
	if v := os.Getenv("MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// after merging, per command.
func (c *Config) Validate() error {
	if c.QualityThreshold < 0 || c.QualityThreshold > 100 {
		return fmt.Errorf("config error: 'quality_threshold' must be between 0 and 100")
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply env or file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.AdzunaAppID == "" {
		result.AdzunaAppID = defaults.AdzunaAppID
	}
	if result.AdzunaAppKey == "" {
		result.AdzunaAppKey = defaults.AdzunaAppKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero, then fall back to built-ins
	if result.QualityThreshold == 0 {
		if defaults.QualityThreshold > 0 {
			result.QualityThreshold = defaults.QualityThreshold
		} else {
			result.QualityThreshold = 70
		}
	}
	if result.MaxIterations == 0 {
		if defaults.MaxIterations > 0 {
			result.MaxIterations = defaults.MaxIterations
		} else {
			result.MaxIterations = 3
		}
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
