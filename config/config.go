package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig      `json:"server"`
	Feed        FeedConfig        `json:"feed"`
	Trending    TrendingConfig    `json:"trending"`
	Preferences PreferencesConfig `json:"preferences"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// FeedConfig points at the SSE endpoint that emits new secrets.
type FeedConfig struct {
	URL string `json:"url"`
}

type TrendingConfig struct {
	// DefaultWindowHours is the time window used for the precomputed snapshot.
	DefaultWindowHours int `json:"default_window_hours"`
	DefaultLimit       int `json:"default_limit"`
	// RefreshQuietMs is the debounce quiet period applied to snapshot
	// recomputation when secrets arrive in bursts.
	RefreshQuietMs int `json:"refresh_quiet_ms"`
}

type PreferencesConfig struct {
	Path string `json:"path"`
	// SaveQuietMs is the debounce quiet period for preference writes.
	SaveQuietMs int `json:"save_quiet_ms"`
}

func Load(cfg *Config, path string) error {
	// Local .env files feed the environment overrides applied below
	loadEnv()

	// Open the configuration file
	cfgFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer cfgFile.Close()

	// Read the configuration file
	cfgBytes, err := io.ReadAll(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal the configuration into the cfg struct
	if err = json.Unmarshal(cfgBytes, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnv()

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	return nil
}

// loadEnv loads environment variables from local .env files, if present
func loadEnv() {
	for _, file := range []string{".env", ".env.dev"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		// Best effort, the process environment still applies
		_ = godotenv.Overload(file)
	}
}

// applyEnv overrides file values with environment variables when set
func (c *Config) applyEnv() {
	c.Server.Host = getEnv("TRENDS_SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvInt("TRENDS_SERVER_PORT", c.Server.Port)
	c.Feed.URL = getEnv("TRENDS_FEED_URL", c.Feed.URL)
	c.Preferences.Path = getEnv("TRENDS_PREFERENCES_PATH", c.Preferences.Path)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetServerAddress returns the HTTP server address in host:port format
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetFeedURL returns the secrets feed URL
func (c *Config) GetFeedURL() string {
	return c.Feed.URL
}
