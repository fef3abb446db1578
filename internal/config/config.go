package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"legumedash/internal"
	"legumedash/internal/errors"
)

// DefaultDataFile is the fixed dataset path the dashboard reads at startup
const DefaultDataFile = "legus_cleaned.csv"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// DataConfig holds dataset settings
type DataConfig struct {
	File  string
	Sheet string // xlsx only
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Data:    *loadDataConfig(),
		Logging: *loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  getEnvOrDefault("DATA_FILE", DefaultDataFile),
		Sheet: getEnvOrDefault("DATA_SHEET", ""),
	}
}

func loadLoggingConfig() *LoggingConfig {
	level, _ := internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	return &LoggingConfig{Level: level}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if p, err := strconv.Atoi(config.Server.Port); err != nil || p <= 0 || p > 65535 {
		return errors.ConfigInvalid("PORT must be a number between 1 and 65535")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if strings.TrimSpace(config.Data.File) == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
