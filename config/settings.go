package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadUserConfig loads the settings file from a specific path.
func LoadUserConfig(settingsPath string) (*UserConfig, error) {
	cfg := &UserConfig{}
	if _, err := toml.DecodeFile(settingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return cfg, nil
}

// CreateDefaultSettings writes the commented settings template on first run.
func CreateDefaultSettings() error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath()
	// 0600 - settings may name private endpoints
	f, err := os.OpenFile(settingsPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(GenerateSettingsTemplate()); err != nil {
		return fmt.Errorf("failed to write settings template: %w", err)
	}
	return nil
}
