package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Identity provider configuration. The provider issues the tokens;
	// we only verify them with the shared secret.
	IdentityJWTSecret string

	// Geocoding configuration
	GeocodingAPIKey string
	GeocodingAPIURL string
}

// LoadConfig builds a Config from environment variables. Every secret can
// alternatively be supplied via <NAME>_FILE pointing at a file, for
// deployments that mount secrets.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:        getenv("SERVER_PORT", "8080"),
		ServerHost:        getenv("SERVER_HOST", "0.0.0.0"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        getenvOrFile("DB_PASSWORD", ""),
		DBName:            getenv("DB_NAME", "aremaru"),
		DBSSLMode:         getenv("DB_SSL_MODE", "disable"),
		RedisHost:         getenv("REDIS_HOST", "localhost"),
		RedisPort:         getenv("REDIS_PORT", "6379"),
		RedisPassword:     getenvOrFile("REDIS_PASSWORD", ""),
		RedisURL:          getenv("REDIS_URL", ""),
		IdentityJWTSecret: getenvOrFile("IDENTITY_JWT_SECRET", ""),
		GeocodingAPIKey:   getenvOrFile("GEOCODING_API_KEY", ""),
		GeocodingAPIURL:   getenv("GEOCODING_API_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// ValidateConfig checks that the fields the server cannot run without are
// present.
func ValidateConfig(cfg *Config) error {
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database connection settings are incomplete")
	}
	if cfg.IdentityJWTSecret == "" {
		return fmt.Errorf("IDENTITY_JWT_SECRET is required")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvOrFile reads key from the environment, falling back to the file
// named by <key>_FILE.
func getenvOrFile(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return fallback
}
