// Package config loads gamedeck settings from config.yaml, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmcdole/gamedeck/internal/logging"
)

const envPrefix = "GAMEDECK"

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Insights InsightsConfig `mapstructure:"insights"`
	Images   ImagesConfig   `mapstructure:"images"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  logging.Config `mapstructure:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// CatalogConfig configures the RAWG client and the name search enrichment
type CatalogConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	SearchPageSize int           `mapstructure:"search_page_size"`
	EnrichLimit    int           `mapstructure:"enrich_limit"`   // concurrent enrichment requests
	MediaPerGame   int           `mapstructure:"media_per_game"` // screenshots kept per search result
}

// InsightsConfig configures the AI insight provider
type InsightsConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	RepairTruncated bool          `mapstructure:"repair_truncated"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type ImagesConfig struct {
	ProxyURL string `mapstructure:"proxy_url"`
}

// CacheConfig bounds the in-memory fetch caches
type CacheConfig struct {
	Capacity  int           `mapstructure:"capacity"`
	DetailTTL time.Duration `mapstructure:"detail_ttl"`
	ListTTL   time.Duration `mapstructure:"list_ttl"`
}

// StorageConfig locates the favorites/state database. An empty path keeps
// everything in memory.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type TracingConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://api.rawg.io/api",
			Timeout:        15 * time.Second,
			SearchPageSize: 20,
			EnrichLimit:    4,
			MediaPerGame:   4,
		},
		Insights: InsightsConfig{
			Endpoint:        "https://api.openai.com/v1/chat/completions",
			Model:           "gpt-3.5-turbo",
			Temperature:     0.7,
			MaxTokens:       1000,
			RepairTruncated: true,
			Timeout:         60 * time.Second,
		},
		Images: ImagesConfig{
			ProxyURL: "https://images.weserv.nl/",
		},
		Cache: CacheConfig{
			Capacity:  100,
			DetailTTL: 30 * time.Minute,
			ListTTL:   10 * time.Minute,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "gamedeck.db"),
		},
		Logging: logging.Config{
			File:  filepath.Join(defaultDataPath(), "gamedeck.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gamedeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gamedeck")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gamedeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gamedeck")
	}
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigDir(), ".env")
}

// LoadFrom reads config.yaml from configDir (or the working directory),
// then applies envFile and the process environment on top. A missing
// config file or env file is not an error.
func LoadFrom(configDir, envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	v := newViper(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	setDefaults(v, DefaultConfig())

	// GAMEDECK_CACHE_CAPACITY overrides cache.capacity, and so on.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names shared with the web build of the catalog browser.
	_ = v.BindEnv("catalog.api_key", envPrefix+"_CATALOG_API_KEY", "RAWG_API_KEY", "VITE_RAWG_API_KEY")
	_ = v.BindEnv("insights.api_key", envPrefix+"_INSIGHTS_API_KEY", "AI_API_KEY", "VITE_AI_API_KEY")
	_ = v.BindEnv("insights.endpoint", envPrefix+"_INSIGHTS_ENDPOINT", "AI_ENDPOINT", "VITE_AI_ENDPOINT")
	_ = v.BindEnv("tracing.endpoint", envPrefix+"_TRACING_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.search_page_size", cfg.Catalog.SearchPageSize)
	v.SetDefault("catalog.enrich_limit", cfg.Catalog.EnrichLimit)
	v.SetDefault("catalog.media_per_game", cfg.Catalog.MediaPerGame)

	v.SetDefault("insights.endpoint", cfg.Insights.Endpoint)
	v.SetDefault("insights.api_key", cfg.Insights.APIKey)
	v.SetDefault("insights.model", cfg.Insights.Model)
	v.SetDefault("insights.temperature", cfg.Insights.Temperature)
	v.SetDefault("insights.max_tokens", cfg.Insights.MaxTokens)
	v.SetDefault("insights.repair_truncated", cfg.Insights.RepairTruncated)
	v.SetDefault("insights.timeout", cfg.Insights.Timeout)

	v.SetDefault("images.proxy_url", cfg.Images.ProxyURL)

	v.SetDefault("cache.capacity", cfg.Cache.Capacity)
	v.SetDefault("cache.detail_ttl", cfg.Cache.DetailTTL)
	v.SetDefault("cache.list_ttl", cfg.Cache.ListTTL)

	v.SetDefault("storage.path", cfg.Storage.Path)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetDefault("tracing.endpoint", cfg.Tracing.Endpoint)
	v.SetDefault("metrics.addr", cfg.Metrics.Addr)
}

// SaveAPIKey stores the catalog API key in the default config file,
// preserving any other settings already there.
func SaveAPIKey(key string) error {
	return SaveAPIKeyTo(DefaultConfigDir(), key)
}

// SaveAPIKeyTo stores the catalog API key in configDir/config.yaml.
func SaveAPIKeyTo(configDir, key string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.Set("catalog.api_key", key)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if a catalog API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Catalog.APIKey) != ""
}

// InsightsEnabled returns true if an AI API key is set
func (c *Config) InsightsEnabled() bool {
	return strings.TrimSpace(c.Insights.APIKey) != ""
}
