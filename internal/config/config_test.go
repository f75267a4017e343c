package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GROCERY_CONFIG", "DATABASE_URL", "SESSION_SECRET", "LOG_DIR", "GROCERY_DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", " postgres://app@localhost/final ")
	t.Setenv("GROCERY_DEBUG", "true")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app@localhost/final", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Empty(t, cfg.LogDir)
}

func TestLoadRejectsBadDebugFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/final")
	t.Setenv("GROCERY_DEBUG", "sometimes")

	_, err := Load()
	assert.ErrorContains(t, err, "GROCERY_DEBUG")
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "grocery.yaml")
	content := "database_url: postgres://file@localhost/final\ndebug: true\nlog_dir: /var/log/grocery\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("GROCERY_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://file@localhost/final", cfg.DatabaseURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/var/log/grocery", cfg.LogDir)

	t.Setenv("DATABASE_URL", "postgres://env@localhost/final")
	t.Setenv("GROCERY_DEBUG", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env@localhost/final", cfg.DatabaseURL)
	assert.False(t, cfg.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROCERY_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}
