package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"api_base_url":          "https://www.example:9000",
		"api_token":             "secret",
		"request_timeout":       "4s",
		"online_check_interval": 2000000000,
		"journal_path":          "",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, []string{"-config", full}))

		assert.Equal(t, "https://www.example:9000", cfg.APIBaseURL)
		assert.Equal(t, "secret", cfg.APIToken)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Second, cfg.OnlineCheckInterval)
		assert.Empty(t, cfg.JournalPath)
		assert.Equal(t, 10, cfg.PageSize, "missing keys keep their value")
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, nil))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", bad}))
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := writeTempJSON(t, dir, "dur.json", map[string]any{"request_timeout": "soon"})
		cfg := defaults()
		require.Error(t, parseJSON(&cfg, []string{"-c", bad}))
	})
}
