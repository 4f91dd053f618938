package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/careplus/go-frontdesk-client/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.New()
	require.Equal(t, "Front Desk", c.GetAppName())
	require.Equal(t, "http://localhost:5000", c.GetBaseURL())
	require.Equal(t, 15*time.Second, c.GetRequestTimeout())
	require.Equal(t, 10, c.GetPageSize())
	require.Equal(t, 8*time.Hour, c.GetTokenTTL())
	require.Equal(t, "info", c.GetLogLevel())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FRONTDESK_BASE_URL", "https://clinic.example.com")
	t.Setenv("FRONTDESK_PAGE_SIZE", "25")
	t.Setenv("FRONTDESK_REQUEST_TIMEOUT", "5s")

	c := config.New()
	require.Equal(t, "https://clinic.example.com", c.GetBaseURL())
	require.Equal(t, 25, c.GetPageSize())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
}

func TestBadEnvValuesFallThrough(t *testing.T) {
	t.Setenv("FRONTDESK_PAGE_SIZE", "not-a-number")
	t.Setenv("FRONTDESK_REQUEST_TIMEOUT", "soon")

	c := config.New()
	require.Equal(t, 10, c.GetPageSize())
	require.Equal(t, 15*time.Second, c.GetRequestTimeout())
}

func TestYAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"base_url: https://file.example.com\npage_size: 50\nlog_level: debug\n",
	), 0o600))

	t.Setenv("FRONTDESK_CONFIG", path)
	t.Setenv("FRONTDESK_BASE_URL", "https://env.example.com")

	c := config.New()
	// Env beats file, file beats default.
	require.Equal(t, "https://env.example.com", c.GetBaseURL())
	require.Equal(t, 50, c.GetPageSize())
	require.Equal(t, "debug", c.GetLogLevel())
}

func TestMissingConfigFileUsesDefaults(t *testing.T) {
	t.Setenv("FRONTDESK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	c := config.New()
	require.Equal(t, "http://localhost:5000", c.GetBaseURL())
}
