package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("process environment", func(t *testing.T) {
		clearEnv(t)
		withArgs(t)
		t.Setenv(envAPIURL, "https://api.example.com")
		t.Setenv(envClientSecret, "s3cret")

		cfg := &Config{APIBaseURL: "default", LogLevel: "info"}
		parseEnv(cfg)

		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "s3cret", cfg.ClientSecret)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("dotenv file from flag", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "client.env")
		require.NoError(t, os.WriteFile(path, []byte(
			"GYNECARE_CLIENT_ID=from-file\nGYNECARE_SESSION_DB=/var/lib/gynecare.db\n"), 0o600))
		withArgs(t, "-e", path)

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "from-file", cfg.ClientID)
		assert.Equal(t, "/var/lib/gynecare.db", cfg.SessionDBPath)
	})

	t.Run("process environment wins over file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(envClientID, "from-env")
		path := filepath.Join(t.TempDir(), "client.env")
		require.NoError(t, os.WriteFile(path, []byte("GYNECARE_CLIENT_ID=from-file\n"), 0o600))
		withArgs(t, "-env", path)

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "from-env", cfg.ClientID)
	})

	t.Run("missing explicit file panics", func(t *testing.T) {
		clearEnv(t)
		withArgs(t, "-e", filepath.Join(t.TempDir(), "nope.env"))

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
