package config

import (
	"encoding/json"
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

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_base_url": "http://www.example:9000",
		"token_file":      "mytoken",
		"request_timeout": "45s",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://www.example:9000", cfg.ServerBaseURL)
		assert.Equal(t, "mytoken", cfg.TokenFile)
		assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			ServerBaseURL:  "http://defaults:1234",
			TokenFile:      "tok",
			RequestTimeout: 2 * time.Minute,
		}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
		assert.Equal(t, "tok", cfg.TokenFile)
		assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	})

	t.Run("panics on unreadable file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "missing.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
