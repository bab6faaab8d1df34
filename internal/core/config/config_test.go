package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, 24.0, cfg.Render.FontSize)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.True(t, cfg.TUI.MouseEnabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/config.yaml", "/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, 24.0, cfg.Render.FontSize)
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
tui:
  theme: plain
  mouse_enabled: false
render:
  font_size: 32
`)

	cfg, err := config.Load(path, "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "plain", cfg.TUI.Theme)
	assert.False(t, cfg.TUI.MouseEnabled)
	assert.Equal(t, 32.0, cfg.Render.FontSize)
	assert.Equal(t, "/tmp/data", cfg.DataDir, "data dir comes from flags, not the file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "tui: [not a map")

	_, err := config.Load(path, "/tmp/data")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults valid", func(*config.Config) {}, false},
		{"unknown theme", func(c *config.Config) { c.TUI.Theme = "solarized" }, true},
		{"zero font size", func(c *config.Config) { c.Render.FontSize = 0 }, true},
		{"negative busy timeout", func(c *config.Config) { c.Database.BusyTimeout = -1 }, true},
		{"empty theme allowed", func(c *config.Config) { c.TUI.Theme = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	err := cfg.ValidateDeep(t.TempDir())
	assert.Error(t, err)
}
