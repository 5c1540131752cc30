package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.True(t, cfg.EcotrackEnabled)
	assert.True(t, cfg.MaystroEnabled)
	assert.False(t, cfg.SandboxEnabled)
	assert.Equal(t, "courierdz", cfg.ServiceName)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("YALIDINE_ENABLED", "false")
	t.Setenv("SANDBOX_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.YalidineEnabled)
	assert.True(t, cfg.SandboxEnabled)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestConfig_Attributes(t *testing.T) {
	cfg := &config.Config{ServiceName: "courierdz", Version: "1.0.0", ProcolisEnabled: true}

	attrs := cfg.Attributes()
	require.Len(t, attrs, 7)
	assert.Equal(t, "courierdz", attrs[0].Value.AsString())
	assert.True(t, attrs[4].Value.AsBool())
}
