package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type ProviderConfig struct {
	ID      string `toml:"id"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url,omitempty"`
}

type CalComConfig struct {
	BaseURL string `toml:"base_url"`
	FindURL string `toml:"find_url"`
}

type UserConfig struct {
	DataDirectory string         `toml:"data_directory"`
	Provider      ProviderConfig `toml:"provider"`
	CalCom        CalComConfig   `toml:"calcom"`
}

// Config is the resolved runtime configuration: defaults, then the settings
// file, then CALCHAT_* environment overrides.
type Config struct {
	DataDirectory string
	ProviderID    string
	Model         string
	BaseURL       string
	CalComBaseURL string
	CalComFindURL string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if id := os.Getenv("CALCHAT_PROVIDER"); id != "" {
		c.ProviderID = id
	}
	if model := os.Getenv("CALCHAT_MODEL"); model != "" {
		c.Model = model
	}
	if url := os.Getenv("CALCHAT_PROVIDER_URL"); url != "" {
		c.BaseURL = url
	}
	if dataDir := os.Getenv("CALCHAT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if url := os.Getenv("CALCHAT_CAL_BASE_URL"); url != "" {
		c.CalComBaseURL = url
	}
	if url := os.Getenv("CALCHAT_CAL_FIND_URL"); url != "" {
		c.CalComFindURL = url
	}
}

func CheckDebug() bool {
	debug := os.Getenv("CALCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log may contain request diagnostics
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (CALCHAT_DEBUG=%s) ===", os.Getenv("CALCHAT_DEBUG"))
}

func Load() (*Config, error) {
	defaults := DefaultUserConfig()
	cfg := &Config{
		DataDirectory: defaults.DataDirectory,
		ProviderID:    defaults.Provider.ID,
		Model:         defaults.Provider.Model,
		BaseURL:       defaults.Provider.BaseURL,
		CalComBaseURL: defaults.CalCom.BaseURL,
		CalComFindURL: defaults.CalCom.FindURL,
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		userCfg, err := LoadUserConfig(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		if userCfg.DataDirectory != "" {
			cfg.DataDirectory = userCfg.DataDirectory
		}
		if userCfg.Provider.ID != "" {
			cfg.ProviderID = userCfg.Provider.ID
		}
		if userCfg.Provider.Model != "" {
			cfg.Model = userCfg.Provider.Model
		}
		if userCfg.Provider.BaseURL != "" {
			cfg.BaseURL = userCfg.Provider.BaseURL
		}
		if userCfg.CalCom.BaseURL != "" {
			cfg.CalComBaseURL = userCfg.CalCom.BaseURL
		}
		if userCfg.CalCom.FindURL != "" {
			cfg.CalComFindURL = userCfg.CalCom.FindURL
		}
	} else if err := CreateDefaultSettings(); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}
