package config

import (
	"fmt"
	"os"
)

const defaultEdamamBaseURL = "https://api.edamam.com/api/recipes/v2"

// Config holds the configuration for the application.
type Config struct {
	// Recipe search API credentials.
	EdamamAppID   string
	EdamamAppKey  string
	EdamamBaseURL string

	// Firestore backing store. An empty project ID selects the in-memory
	// store, which only makes sense for local development.
	FirebaseProjectID       string
	FirebaseCredentialsFile string

	// Key used to sign session tokens.
	SessionSigningKey string

	// Path of the on-device sqlite database.
	DeviceDBPath string

	Port     string
	LogLevel string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	edamamAppID := os.Getenv("EDAMAM_APP_ID")
	if edamamAppID == "" {
		return nil, fmt.Errorf("EDAMAM_APP_ID environment variable not set")
	}

	edamamAppKey := os.Getenv("EDAMAM_APP_KEY")
	if edamamAppKey == "" {
		return nil, fmt.Errorf("EDAMAM_APP_KEY environment variable not set")
	}

	sessionSigningKey := os.Getenv("SESSION_SIGNING_KEY")
	if sessionSigningKey == "" {
		return nil, fmt.Errorf("SESSION_SIGNING_KEY environment variable not set")
	}

	return &Config{
		EdamamAppID:             edamamAppID,
		EdamamAppKey:            edamamAppKey,
		EdamamBaseURL:           getEnvOrDefault("EDAMAM_BASE_URL", defaultEdamamBaseURL),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		SessionSigningKey:       sessionSigningKey,
		DeviceDBPath:            getEnvOrDefault("DEVICE_DB_PATH", "data/mealmate.db"),
		Port:                    getEnvOrDefault("PORT", "8080"),
		LogLevel:                getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

// getEnvOrDefault returns the environment variable value or the default if
// it is not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
