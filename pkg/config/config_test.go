package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "/app/algorithm/fet-7.5.5/fet-cl", cfg.Fet.BinaryPath)
	assert.Equal(t, "/tmp/fet-jobs", cfg.Fet.WorkDir)
	assert.Equal(t, 120*time.Second, cfg.Fet.Timeout)
	assert.Empty(t, cfg.Auth.ServiceToken)
	assert.True(t, cfg.Export.Enabled)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("PORT", "9090")
	t.Setenv("FET_BINARY_PATH", "/opt/fet/fet-cl")
	t.Setenv("FET_TIMEOUT", "30s")
	t.Setenv("SERVICE_AUTH_TOKEN", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/opt/fet/fet-cl", cfg.Fet.BinaryPath)
	assert.Equal(t, 30*time.Second, cfg.Fet.Timeout)
	assert.Equal(t, "secret", cfg.Auth.ServiceToken)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 30*time.Second, parseDuration("30s", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("not-a-duration", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}
