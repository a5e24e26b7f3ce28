package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withArgs replaces os.Args for the duration of the test.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

// unsetEnv removes the given variables and restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.APIBaseURL)
	assert.Equal(t, "session.db", filepath.Base(c.DatabasePath))
	assert.Equal(t, "loandesk", filepath.Base(filepath.Dir(c.DatabasePath)))
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 60, c.ResendCooldown)
	assert.Equal(t, time.Second, c.CooldownTick)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_Precedence(t *testing.T) {
	unsetEnv(t, EnvAPIURL, EnvDatabase, EnvTimeout, EnvLogLevel)
	dir := t.TempDir()

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"LOANDESK_API_URL=http://env:1\nLOANDESK_DB=/env/session.db\nLOANDESK_LOG_LEVEL=warn\n"), 0o600))

	jsonFile := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"api_base_url":    "http://json:2",
		"request_timeout": "30s",
	})

	withArgs(t, "-env", envFile, "-c", jsonFile, "-t", "5")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://json:2", cfg.APIBaseURL)
	assert.Equal(t, "/env/session.db", cfg.DatabasePath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60, cfg.ResendCooldown)
}

func TestLoadConfig_NoSources(t *testing.T) {
	unsetEnv(t, EnvAPIURL, EnvDatabase, EnvTimeout, EnvLogLevel)
	withArgs(t, "-env", filepath.Join(t.TempDir(), "missing.env"))

	cfg := LoadConfig()

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}
