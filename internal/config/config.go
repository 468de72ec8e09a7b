package config

import (
	"os"
	"strconv"
	"time"

	"catview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Admin    AdminConfig
	Data     DataConfig
	Image    ImageConfig
}

// DatabaseConfig holds database connection settings. URL is optional: when
// empty the service runs with in-memory repositories.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AdminConfig holds the health/pprof side server settings
type AdminConfig struct {
	Port    string
	Enabled bool
}

// DataConfig holds data handling settings
type DataConfig struct {
	UploadDir     string
	MaxUploadSize int64
	CatalogFile   string // optional fixed local path loaded at startup
}

// ImageConfig holds image resolution settings
type ImageConfig struct {
	FetchTimeout time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Admin: AdminConfig{
			Port:    getEnvOrDefault("ADMIN_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("ADMIN_ENABLED", true),
		},
		Data: DataConfig{
			UploadDir:     getEnvOrDefault("UPLOAD_DIR", "./uploads"),
			MaxUploadSize: getEnvInt64OrDefault("MAX_UPLOAD_SIZE", 50*1024*1024),
			CatalogFile:   getEnvOrDefault("CATALOG_FILE", ""),
		},
		Image: ImageConfig{
			FetchTimeout: getEnvDurationOrDefault("IMAGE_FETCH_TIMEOUT", 10*time.Second),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.UploadDir == "" {
		return errors.ConfigInvalid("upload directory is required")
	}
	if config.Data.MaxUploadSize <= 0 {
		return errors.ConfigInvalid("max upload size must be positive")
	}
	if config.Image.FetchTimeout <= 0 {
		return errors.ConfigInvalid("image fetch timeout must be positive")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
