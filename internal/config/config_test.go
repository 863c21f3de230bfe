package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"gemini_api_key": "test-gemini-key",
		"adzuna_app_id": "test-app-id",
		"database_url": "postgres://localhost/swisscv",
		"quality_threshold": 80,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-gemini-key", cfg.GeminiAPIKey)
	assert.Equal(t, "test-app-id", cfg.AdzunaAppID)
	assert.Equal(t, "postgres://localhost/swisscv", cfg.DatabaseURL)
	assert.Equal(t, 80, cfg.QualityThreshold)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("ADZUNA_APP_ID", "env-app-id")
	t.Setenv("ADZUNA_APP_KEY", "env-app-key")
	t.Setenv("QUALITY_THRESHOLD", "85")
	t.Setenv("MAX_ITERATIONS", "5")
	t.Setenv("PORT", "9090")

	cfg := FromEnv()

	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "env-app-id", cfg.AdzunaAppID)
	assert.Equal(t, "env-app-key", cfg.AdzunaAppKey)
	assert.Equal(t, 85, cfg.QualityThreshold)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 9090, cfg.Port)
}

func TestFromEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QUALITY_THRESHOLD", "very high")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.QualityThreshold)
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := &Config{QualityThreshold: 101}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quality_threshold")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{MaxIterations: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_iterations")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey:     "key",
		QualityThreshold: 70,
		MaxIterations:    3,
		Port:             8080,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		GeminiAPIKey:     "default-key",
		DatabaseURL:      "postgres://localhost/swisscv",
		QualityThreshold: 80,
		MaxIterations:    2,
	}

	partial := Config{
		GeminiAPIKey: "custom-key",
		AdzunaAppID:  "custom-app-id",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.GeminiAPIKey)
	assert.Equal(t, "custom-app-id", merged.AdzunaAppID)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://localhost/swisscv", merged.DatabaseURL)
	assert.Equal(t, 80, merged.QualityThreshold)
	assert.Equal(t, 2, merged.MaxIterations)
}

func TestMergeWithDefaults_BuiltInFallbacks(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, 70, merged.QualityThreshold)
	assert.Equal(t, 3, merged.MaxIterations)
	assert.Equal(t, 8080, merged.Port)
}
