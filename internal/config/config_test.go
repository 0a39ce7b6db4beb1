package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeHeader)
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "file:otcpharm.db", cfg.DatabaseDSN)
	assert.Equal(t, AuthModeHeader, cfg.AuthMode)
	assert.Empty(t, cfg.GoogleMapsAPIKey)
}

func TestLoadRejectsUnknownAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "mtls")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecretInTokenMode(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeToken)
	t.Setenv("AUTH_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("AUTH_SECRET", "provider-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "provider-secret", cfg.AuthSecret)
}

func TestLoadFallsBackOnBadPort(t *testing.T) {
	t.Setenv("AUTH_MODE", AuthModeHeader)
	t.Setenv("HTTP_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
}
