package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "http://ai-service:8000", cfg.AIServiceURL)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("RESUME_HTTP_PORT", "8081")
	t.Setenv("RESUME_SESSION_TTL", "5m")
	t.Setenv("RESUME_LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigRejectsBadValues(t *testing.T) {
	t.Setenv("RESUME_ENVIRONMENT", "staging")
	_, err := New()
	assert.Error(t, err)
}

func TestConfigRejectsUnparsableDuration(t *testing.T) {
	t.Setenv("RESUME_AI_TIMEOUT", "soon")
	_, err := New()
	assert.Error(t, err)
}
