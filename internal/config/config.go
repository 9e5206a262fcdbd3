// Package config loads and validates application configuration from the
// environment and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Reading  ReadingConfig  `mapstructure:"reading" validate:"required"`
}

// ServerConfig contains process-level settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// ReadingConfig tunes the reading engine.
type ReadingConfig struct {
	// DefaultTone is the tone used for users with no stored preference and
	// as the fallback for unknown tone names.
	DefaultTone string `mapstructure:"default_tone" validate:"required"`

	// UnitBudget is the per-unit character ceiling the response assembler
	// packs sections against (the platform embed limit).
	UnitBudget int `mapstructure:"unit_budget" validate:"required,gt=0"`

	// HistoryLimit is the hard maximum of rows fetchHistory returns
	// regardless of the requested limit.
	HistoryLimit int `mapstructure:"history_limit" validate:"required,gt=0"`

	// StoreTimeoutSeconds bounds each round-trip to the persistence
	// collaborator.
	StoreTimeoutSeconds int `mapstructure:"store_timeout_seconds" validate:"required,gt=0"`
}
