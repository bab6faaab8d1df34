// Package config handles configuration loading and validation for lemma.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	TUI      TUIConfig    `yaml:"tui"`
	Render   RenderConfig `yaml:"render"`
	Database DBConfig     `yaml:"database"`
	DataDir  string       `yaml:"-"` // set by caller, not from config file
}

// TUIConfig holds interactive view settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// MouseEnabled controls whether formula clicks hit-test sub-expressions.
	MouseEnabled bool `yaml:"mouse_enabled"`
}

// RenderConfig holds typesetting engine settings.
type RenderConfig struct {
	// FontSize is the point size formulas are laid out at.
	FontSize float64 `yaml:"font_size"`
}

// DBConfig holds sqlite connection settings.
type DBConfig struct {
	BusyTimeout int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TUI: TUIConfig{
			Theme:        "tokyo-night",
			MouseEnabled: true,
		},
		Render: RenderConfig{
			FontSize: 24,
		},
		Database: DBConfig{
			BusyTimeout: 5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
