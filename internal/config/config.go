package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once by
// Load and never mutated afterwards.
type Config struct {
	// APIKey authenticates requests against the ExchangeRate-API.
	APIKey string
	// BaseURL is the API root, ending in a slash. The key and the operation
	// path are appended to it.
	BaseURL string

	Port     string
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	apiKey := getEnv("EXCHANGE_RATE_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("EXCHANGE_RATE_API_KEY must be set")
	}

	return &Config{
		APIKey:   apiKey,
		BaseURL:  getEnv("EXCHANGE_RATE_API_BASE_URL", "https://v6.exchangerate-api.com/v6/"),
		Port:     getEnv("PORT", "8081"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
