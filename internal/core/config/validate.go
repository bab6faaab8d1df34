package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("tui.theme", c.TUI.Theme, themeKnown),
		criterio.Run("render.font_size", c.Render.FontSize, fontSizeInRange),
		criterio.Run("database.busy_timeout", c.Database.BusyTimeout, nonNegative),
	)
}

// ValidateDeep adds I/O checks on top of Validate: the config file itself
// and the data directory.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func themeKnown(name string) error {
	if name == "" {
		return nil
	}
	switch name {
	case "tokyo-night", "plain":
		return nil
	}
	return fmt.Errorf("unknown theme %q", name)
}

func fontSizeInRange(size float64) error {
	if size <= 0 {
		return fmt.Errorf("must be positive, got %v", size)
	}
	if size > 200 {
		return fmt.Errorf("unreasonably large: %v", size)
	}
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative, got %d", v)
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
