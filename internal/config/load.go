package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep the engine runnable with nothing but a database URL.
	v.SetDefault("server.log_level", "info")
	// Empty default registers the key so AutomaticEnv can fill it; the
	// required validation below rejects a still-empty URL.
	v.SetDefault("database.url", "")
	v.SetDefault("reading.default_tone", "classic")
	v.SetDefault("reading.unit_budget", 5800)
	v.SetDefault("reading.history_limit", 50)
	v.SetDefault("reading.store_timeout_seconds", 3)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing file is fine; environment variables may carry everything.
	}

	// Environment variables with ARCANARA_ prefix, e.g.
	// ARCANARA_DATABASE_URL maps to database.url.
	v.SetEnvPrefix("ARCANARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
