package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SHADOWTRACK_CONFIG_PATH",
		"SHADOWTRACK_SERVER_HOST",
		"SHADOWTRACK_SERVER_PORT",
		"SHADOWTRACK_TRANSPORT_MODE",
		"SHADOWTRACK_AUTH_ENABLED",
		"SHADOWTRACK_DB_PATH",
		"SHADOWTRACK_LOG_LEVEL",
		"OPENAI_API_KEY",
		"SHADOWTRACK_OPENAI_BASE_URL",
		"SHADOWTRACK_OPENAI_MODEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "shadowtrack.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "gpt-4", cfg.OpenAI.Model)
	require.Equal(t, 500, cfg.OpenAI.MaxTokens)
	require.InDelta(t, 0.7, cfg.OpenAI.Temperature, 1e-9)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHADOWTRACK_SERVER_HOST", "127.0.0.1")
	t.Setenv("SHADOWTRACK_SERVER_PORT", "9090")
	t.Setenv("SHADOWTRACK_TRANSPORT_MODE", "http")
	t.Setenv("SHADOWTRACK_AUTH_ENABLED", "true")
	t.Setenv("SHADOWTRACK_DB_PATH", "/tmp/test.db")
	t.Setenv("SHADOWTRACK_LOG_LEVEL", "debug")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SHADOWTRACK_OPENAI_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	require.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: localhost
  port: 3000
transport:
  mode: http
openai:
  model: gpt-4-turbo
  max_tokens: 800
`), 0o600))
	t.Setenv("SHADOWTRACK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "gpt-4-turbo", cfg.OpenAI.Model)
	require.Equal(t, 800, cfg.OpenAI.MaxTokens)
	// Untouched fields keep their defaults.
	require.Equal(t, "shadowtrack.db", cfg.DB.Path)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db:\n  path: from-file.db\n"), 0o600))
	t.Setenv("SHADOWTRACK_CONFIG_PATH", path)
	t.Setenv("SHADOWTRACK_DB_PATH", "from-env.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env.db", cfg.DB.Path)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHADOWTRACK_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTransportMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHADOWTRACK_TRANSPORT_MODE", "websocket")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "transport mode")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHADOWTRACK_CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
}
