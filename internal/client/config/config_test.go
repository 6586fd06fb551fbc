package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every GYNECARE_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envAPIURL, envClientID, envClientSecret, envSessionDB, envLogLevel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.APIBaseURL)
	assert.Equal(t, "gynecare.db", c.SessionDBPath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.ClientID)
	assert.Empty(t, c.ClientSecret)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	withArgs(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "gynecare.db", cfg.SessionDBPath)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAPIURL, "http://env:1")
	t.Setenv(envClientID, "env-id")
	t.Setenv(envLogLevel, "warn")

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json:2",
		"session_db_path": "/tmp/json.db",
	})
	withArgs(t, "-c", path, "-a", "http://flag:3")

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:3", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/json.db", cfg.SessionDBPath)
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "warn", cfg.LogLevel)
}
