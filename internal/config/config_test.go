package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresBackendURL(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://backend:8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "support-portal", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "http://backend:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 8*time.Hour, cfg.Session.SessionTTL())
	assert.Equal(t, 5*time.Minute, cfg.Session.OAuthStateTTL())
	assert.Equal(t, 12*time.Hour, cfg.Session.ChatHistoryTTL())
	assert.Equal(t, 2*time.Second, cfg.Session.EscalateRedirectDelay())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://backend:8000")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_TTL_MINUTES", "60")
	t.Setenv("ESCALATE_REDIRECT_MILLIS", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, time.Hour, cfg.Session.SessionTTL())
	assert.Equal(t, 500*time.Millisecond, cfg.Session.EscalateRedirectDelay())
}
