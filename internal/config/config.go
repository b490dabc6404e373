package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	Host          string
	Port          int
	MongoURI      string
	MongoDBName   string
	SessionSecret string
}

// Load loads configuration from environment variables or sets defaults.
// SESSION_SECRET has no default: session cookies are worthless without a
// stable private key.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}

	return &Config{
		Host:          getEnv("HOST", ""),
		Port:          port,
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DBNAME", "taskboard"),
		SessionSecret: secret,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
