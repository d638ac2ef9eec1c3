package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "campustrade", cfg.Auth.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWT.TTL)
	assert.Equal(t, 9, cfg.Directory.InstitutionalIDLength)
	assert.True(t, cfg.Monitoring.Prometheus.Enabled)
	assert.Equal(t, "/metrics", cfg.Monitoring.Prometheus.Endpoint)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CAMPUSTRADE_SERVER_PORT", "9001")
	t.Setenv("CAMPUSTRADE_DIRECTORY_INSTITUTIONAL_ID_LENGTH", "8")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Directory.InstitutionalIDLength)
}

func TestConfigValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, cfg.Validate())

	cfg.Auth.JWT.Secret = "super-secret"
	assert.NoError(t, cfg.Validate())

	cfg.Directory.InstitutionalIDLength = 0
	assert.Error(t, cfg.Validate())
}
