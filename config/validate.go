package config

import "fmt"

// Validate validates the entire configuration
func (c *Config) Validate() error {
	checks := []func(*Config) error{
		validateServerConfig,
		validateFeedConfig,
		validateTrendingConfig,
		validatePreferencesConfig,
	}

	for _, check := range checks {
		if err := check(c); err != nil {
			return err
		}
	}

	return nil
}

func validateServerConfig(cfg *Config) error {
	if cfg.Server == (ServerConfig{}) {
		return fmt.Errorf("server config is empty")
	}

	if cfg.Server.Host == "" {
		return fmt.Errorf("server host is empty")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port, must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	return nil
}

func validateFeedConfig(cfg *Config) error {
	if cfg.Feed.URL == "" {
		return fmt.Errorf("feed url is empty")
	}

	return nil
}

func validateTrendingConfig(cfg *Config) error {
	if cfg.Trending.DefaultWindowHours <= 0 {
		return fmt.Errorf("trending default window must be positive, got %d", cfg.Trending.DefaultWindowHours)
	}

	if cfg.Trending.DefaultLimit < 0 {
		return fmt.Errorf("trending default limit must not be negative, got %d", cfg.Trending.DefaultLimit)
	}

	if cfg.Trending.RefreshQuietMs < 0 {
		return fmt.Errorf("trending refresh quiet period must not be negative, got %d", cfg.Trending.RefreshQuietMs)
	}

	return nil
}

func validatePreferencesConfig(cfg *Config) error {
	if cfg.Preferences.Path == "" {
		return fmt.Errorf("preferences path is empty")
	}

	if cfg.Preferences.SaveQuietMs < 0 {
		return fmt.Errorf("preferences save quiet period must not be negative, got %d", cfg.Preferences.SaveQuietMs)
	}

	return nil
}
