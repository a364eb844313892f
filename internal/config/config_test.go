package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"RAWG_API_KEY", "VITE_RAWG_API_KEY", "GAMEDECK_CATALOG_API_KEY",
		"AI_API_KEY", "VITE_AI_API_KEY", "GAMEDECK_INSIGHTS_API_KEY",
		"AI_ENDPOINT", "VITE_AI_ENDPOINT", "GAMEDECK_INSIGHTS_ENDPOINT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearKeyEnv(t)

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "https://api.rawg.io/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 100, cfg.Cache.Capacity)
	assert.Equal(t, 30*time.Minute, cfg.Cache.DetailTTL)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Insights.Model)
	assert.Equal(t, 1000, cfg.Insights.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Insights.Temperature, 1e-9)
	assert.False(t, cfg.IsConfigured())
	assert.False(t, cfg.InsightsEnabled())
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	yaml := []byte(`catalog:
  api_key: from-file
  enrich_limit: 2
cache:
  detail_ttl: 5m
logging:
  level: DEBUG
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Catalog.APIKey)
	assert.Equal(t, 2, cfg.Catalog.EnrichLimit)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DetailTTL)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Catalog.MediaPerGame)
}

func TestLoadEnvAliases(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		key  string
	}{
		{"rawg", map[string]string{"RAWG_API_KEY": "k1"}, "k1"},
		{"vite", map[string]string{"VITE_RAWG_API_KEY": "k2"}, "k2"},
		{"prefixed wins", map[string]string{"GAMEDECK_CATALOG_API_KEY": "k3", "RAWG_API_KEY": "k1"}, "k3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadFrom(t.TempDir(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.key, cfg.Catalog.APIKey)
			assert.True(t, cfg.IsConfigured())
		})
	}
}

func TestLoadInsightsEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("VITE_AI_API_KEY", "sk-test")
	t.Setenv("AI_ENDPOINT", "http://localhost:8080/v1/chat/completions")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Insights.APIKey)
	assert.Equal(t, "http://localhost:8080/v1/chat/completions", cfg.Insights.Endpoint)
	assert.True(t, cfg.InsightsEnabled())
}

func TestLoadPrefixedOverride(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GAMEDECK_CACHE_CAPACITY", "42")

	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Cache.Capacity)
}

func TestLoadDotEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GAMEDECK_METRICS_ADDR", "")
	os.Unsetenv("GAMEDECK_METRICS_ADDR")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GAMEDECK_METRICS_ADDR=:9464\n"), 0644))

	cfg, err := LoadFrom(t.TempDir(), envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
}

func TestSaveAPIKeyPreservesSettings(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("logging:\n  level: WARN\n"), 0644))

	require.NoError(t, SaveAPIKeyTo(dir, "saved-key"))

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "saved-key", cfg.Catalog.APIKey)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestSaveAPIKeyCreatesFile(t *testing.T) {
	clearKeyEnv(t)
	dir := filepath.Join(t.TempDir(), "fresh")

	require.NoError(t, SaveAPIKeyTo(dir, "new-key"))

	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "new-key", cfg.Catalog.APIKey)
}
