package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresStoreURL(t *testing.T) {
	t.Setenv("TASKAPP_CONFIG_PATH", "")
	t.Setenv("TASKAPP_STORE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("TASKAPP_CONFIG_PATH", "")
	t.Setenv("TASKAPP_STORE_URL", "https://store.example.com")
	t.Setenv("TASKAPP_STORE_KEY", "secret")
	t.Setenv("TASKAPP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://store.example.com", cfg.Store.URL)
	require.Equal(t, "secret", cfg.Store.Key)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "gemini-2.5-flash", cfg.Assistant.Model)
	require.NotEmpty(t, cfg.Drafts.Path)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
store:
  url: https://file.example.com
  key: file-key
assistant:
  model: custom-model
log:
  level: warn
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("TASKAPP_CONFIG_PATH", path)
	t.Setenv("TASKAPP_STORE_URL", "https://env.example.com")
	t.Setenv("TASKAPP_STORE_KEY", "")
	t.Setenv("TASKAPP_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	// Env wins over file; file wins over defaults.
	require.Equal(t, "https://env.example.com", cfg.Store.URL)
	require.Equal(t, "file-key", cfg.Store.Key)
	require.Equal(t, "custom-model", cfg.Assistant.Model)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: ["), 0o644))

	t.Setenv("TASKAPP_CONFIG_PATH", path)
	_, err := Load()
	require.Error(t, err)
}
