package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chartrender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
log_level: debug
server:
  addr: "127.0.0.1:9000"
bestdori:
  timeout: 3s
  languages: [en, ja]
assets:
  dir: /srv/assets
  font_large: /srv/fonts/title.otf
theme: theme.yaml
batch:
  workers: 8
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://bestdori.com", cfg.Bestdori.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Bestdori.Timeout)
	assert.Equal(t, "/srv/assets", cfg.Assets.Dir)
	assert.Equal(t, "/srv/fonts/title.otf", cfg.Assets.FontLarge)
	assert.Equal(t, "theme.yaml", cfg.Theme)
	assert.Equal(t, 8, cfg.Batch.Workers)

	tags, err := cfg.Bestdori.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "en", tags[0].String())
	assert.Equal(t, "ja", tags[1].String())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"log level": "log_level: loud",
		"base url":  "bestdori:\n  base_url: bestdori.com",
		"timeout":   "bestdori:\n  timeout: 0s",
		"language":  "bestdori:\n  languages: [\"not a tag!\"]",
		"workers":   "batch:\n  workers: 0",
		"addr":      "server:\n  addr: \"\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
