package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv(EnvListenAddress, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvPIDFile, "")

	cfg, err := LoadServer("")
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.PIDFile)
}

func TestLoadServerFromEnvironment(t *testing.T) {
	t.Setenv(EnvListenAddress, "127.0.0.1:9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv("AI_ALPHA_TEST_PIDFILE", "/run/ai-alpha.pid")
	t.Setenv(EnvPIDFile, "ENV:AI_ALPHA_TEST_PIDFILE")

	cfg, err := LoadServer("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/run/ai-alpha.pid", cfg.PIDFile)
}

func TestLoadServerFromEnvFile(t *testing.T) {
	t.Setenv(EnvListenAddress, "")
	t.Setenv(EnvLogLevel, "warn")
	os.Unsetenv(EnvListenAddress)

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("AI_ALPHA_LISTEN_ADDRESS=:8081\nAI_ALPHA_LOG_LEVEL=trace\n"), 0o644))

	cfg, err := LoadServer(file)
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.ListenAddress)
	assert.Equal(t, "warn", cfg.LogLevel, "existing environment wins over env file")
}

func TestLoadServerIgnoresMissingEnvFile(t *testing.T) {
	_, err := LoadServer(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
