// Package commands wires the CLI surface onto the core packages.
package commands

import (
	"os"
	"path/filepath"

	"github.com/proofdeck/lemma/internal/core/config"
	"github.com/proofdeck/lemma/internal/core/typeset"
	"github.com/proofdeck/lemma/internal/data/stores"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// App holds the services constructed in the Before hook. Commands receive a
// pointer to a pre-allocated App that main populates before any action runs.
type App struct {
	Sessions *stores.SessionStore
	Engine   *typeset.Engine
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lemma", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lemma")
}
