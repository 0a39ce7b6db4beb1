package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Auth modes the server can be deployed with. The two are mutually
// exclusive: header mode trusts an X-User-ID header verbatim, token mode
// verifies a bearer credential against the identity provider secret.
const (
	AuthModeHeader = "header"
	AuthModeToken  = "token"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN      string
	HTTPPort         string
	AuthMode         string
	AuthSecret       string
	GoogleMapsAPIKey string
}

// Load reads configuration from environment variables with reasonable
// defaults. GOOGLE_MAPS_API_KEY is the only optional value; everything
// else falls back to a development default or fails.
func Load() (Config, error) {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:otcpharm.db"
	}

	mode := os.Getenv("AUTH_MODE")
	if mode == "" {
		mode = AuthModeToken
	}
	if mode != AuthModeHeader && mode != AuthModeToken {
		return Config{}, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeHeader, AuthModeToken, mode)
	}

	secret := os.Getenv("AUTH_SECRET")
	if mode == AuthModeToken && secret == "" {
		return Config{}, fmt.Errorf("AUTH_SECRET is required when AUTH_MODE is %q", AuthModeToken)
	}

	return Config{
		DatabaseDSN:      dsn,
		HTTPPort:         port,
		AuthMode:         mode,
		AuthSecret:       secret,
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
	}, nil
}
