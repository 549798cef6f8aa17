package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Success", func(t *testing.T) {
		setEnv("EDAMAM_APP_ID", "app_id")
		setEnv("EDAMAM_APP_KEY", "app_key")
		setEnv("SESSION_SIGNING_KEY", "signing_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.EdamamAppID != "app_id" {
			t.Errorf("Expected EdamamAppID to be 'app_id', got '%s'", cfg.EdamamAppID)
		}
		if cfg.EdamamAppKey != "app_key" {
			t.Errorf("Expected EdamamAppKey to be 'app_key', got '%s'", cfg.EdamamAppKey)
		}
		if cfg.SessionSigningKey != "signing_key" {
			t.Errorf("Expected SessionSigningKey to be 'signing_key', got '%s'", cfg.SessionSigningKey)
		}
		if cfg.EdamamBaseURL != defaultEdamamBaseURL {
			t.Errorf("Expected default base URL, got '%s'", cfg.EdamamBaseURL)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default port 8080, got '%s'", cfg.Port)
		}
	})

	t.Run("Defaults overridable", func(t *testing.T) {
		setEnv("EDAMAM_APP_ID", "app_id")
		setEnv("EDAMAM_APP_KEY", "app_key")
		setEnv("SESSION_SIGNING_KEY", "signing_key")
		setEnv("EDAMAM_BASE_URL", "http://edamam.test")
		setEnv("PORT", "9000")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.EdamamBaseURL != "http://edamam.test" {
			t.Errorf("Expected base URL 'http://edamam.test', got '%s'", cfg.EdamamBaseURL)
		}
		if cfg.Port != "9000" {
			t.Errorf("Expected port '9000', got '%s'", cfg.Port)
		}
	})

	t.Run("MissingEdamamAppID", func(t *testing.T) {
		setEnv("EDAMAM_APP_KEY", "app_key")
		setEnv("SESSION_SIGNING_KEY", "signing_key")
		os.Unsetenv("EDAMAM_APP_ID")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing EDAMAM_APP_ID, got nil")
		}
		expectedError := "EDAMAM_APP_ID environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingEdamamAppKey", func(t *testing.T) {
		setEnv("EDAMAM_APP_ID", "app_id")
		setEnv("SESSION_SIGNING_KEY", "signing_key")
		os.Unsetenv("EDAMAM_APP_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing EDAMAM_APP_KEY, got nil")
		}
		expectedError := "EDAMAM_APP_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingSessionSigningKey", func(t *testing.T) {
		setEnv("EDAMAM_APP_ID", "app_id")
		setEnv("EDAMAM_APP_KEY", "app_key")
		os.Unsetenv("SESSION_SIGNING_KEY")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing SESSION_SIGNING_KEY, got nil")
		}
		expectedError := "SESSION_SIGNING_KEY environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
