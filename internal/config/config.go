package config

import (
	"fmt"
	"net/url"
	"os"
)

type Config struct {
	// Remote store. An empty project id runs the server against the
	// in-memory store, for development and tests.
	FirestoreProjectID string

	// Google OAuth (federated login)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Session
	SessionSecret string

	// Local snapshot backup
	SnapshotPath string

	// Share links
	DefaultPhoneRegion string

	// App
	BaseURL string

	// RSVP gating: when set, anonymous RSVPs are deferred until the
	// viewer signs in instead of being recorded against the device id.
	RequireAuthForRSVP bool
}

func Load() (*Config, error) {
	cfg := &Config{
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production"),
		SnapshotPath:       getEnv("SNAPSHOT_PATH", "data/events.json"),
		DefaultPhoneRegion: getEnv("PHONE_REGION", "US"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		RequireAuthForRSVP: getEnv("REQUIRE_AUTH_RSVP", "") == "true",
	}

	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid BASE_URL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
