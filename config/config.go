package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// IsConfigured returns true if all required Google OAuth configuration is present
func (c GoogleConfig) IsConfigured() bool {
	return c.ClientID != "" &&
		c.ClientSecret != "" &&
		c.CallbackURL != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string
	SessionSecret  string
	SessionTTL     time.Duration
	Port           string
	Environment    string

	// Frontend redirect targets
	FrontendOrigin            string
	FrontendGoogleCallbackURL string

	// Optional integrations
	Google          GoogleConfig
	AlertWebhookURL string
}

// LoadConfig reads configuration from the environment, loading .env first
// when present. Required variables fail fast.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Could not load .env file, continuing with system env vars")
	}

	cfg := &AppConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		},
		FrontendOrigin:            getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:3000"),
		FrontendGoogleCallbackURL: os.Getenv("FRONTEND_GOOGLE_CALLBACK_URL"),
		AlertWebhookURL:           os.Getenv("ALERT_WEBHOOK_URL"),
	}

	var err error
	if cfg.DatabaseURL, err = requireEnv("DB_URL"); err != nil {
		return nil, err
	}
	if cfg.DatabaseSchema, err = requireEnv("DB_SCHEMA"); err != nil {
		return nil, err
	}
	if cfg.SessionSecret, err = requireEnv("SESSION_SECRET"); err != nil {
		return nil, err
	}

	ttl := getEnvOrDefault("SESSION_TTL", "24h")
	cfg.SessionTTL, err = time.ParseDuration(ttl)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
	}

	if cfg.FrontendGoogleCallbackURL == "" {
		cfg.FrontendGoogleCallbackURL = cfg.FrontendOrigin + "/google/oauth/callback"
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is not set", key)
	}
	return value, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
