package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the analytics engine.
type Config struct {
	// Server configuration
	Port     string
	GinMode  string
	LogLevel string

	// External services
	OpenAIAPIKey  string
	MapsAPIKey    string
	FirebaseCreds string

	// Scheduler
	CronEnabled    bool
	WorkerPoolSize int
}

// Load reads configuration from environment variables. Call after godotenv
// has loaded .env in main.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		MapsAPIKey:    os.Getenv("MAPS_API_KEY"),
		FirebaseCreds: os.Getenv("FIREBASE_CREDENTIALS"),

		CronEnabled:    getBoolEnv("CRON_ENABLED", true),
		WorkerPoolSize: getIntEnv("WORKER_POOL_SIZE", 8),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
