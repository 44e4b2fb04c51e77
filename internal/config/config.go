// Package config loads service configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	// HTTP
	Port string

	// Database
	DatabaseURL string

	// Contentful source
	ContentfulSpaceID     string
	ContentfulAccessToken string
	ContentfulEnvironment string
	ContentfulContentType string

	// Auth
	JWTSecret string

	// Sync
	SyncInterval time.Duration

	// Logging
	LogLevel string
	AppEnv   string
}

// Load reads configuration from the environment.
// Required variables missing cause an error listing every missing key.
func Load() (*Config, error) {
	// Best-effort: absent .env is fine, env vars win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnv("PORT", "3000"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		ContentfulSpaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
		ContentfulAccessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
		ContentfulEnvironment: os.Getenv("CONTENTFUL_ENVIRONMENT"),
		ContentfulContentType: os.Getenv("CONTENTFUL_CONTENT_TYPE"),
		JWTSecret:             getEnv("JWT_SECRET", "change-me-in-production"),
		SyncInterval:          getEnvDuration("SYNC_INTERVAL", time.Hour),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AppEnv:                getEnv("APP_ENV", "development"),
	}

	var missing []string
	for key, val := range map[string]string{
		"DATABASE_URL":            cfg.DatabaseURL,
		"CONTENTFUL_SPACE_ID":     cfg.ContentfulSpaceID,
		"CONTENTFUL_ACCESS_TOKEN": cfg.ContentfulAccessToken,
		"CONTENTFUL_ENVIRONMENT":  cfg.ContentfulEnvironment,
		"CONTENTFUL_CONTENT_TYPE": cfg.ContentfulContentType,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %v", missing)
	}

	return cfg, nil
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
