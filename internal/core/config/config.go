// Package config handles configuration loading and validation for trek.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names a checklist storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Storage    StorageConfig  `yaml:"storage"`
	TUI        TUIConfig      `yaml:"tui"`
	Defaults   DefaultsConfig `yaml:"defaults"`
	DateFormat string         `yaml:"date_format"`
	DataDir    string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects and tunes the checklist storage backend.
type StorageConfig struct {
	Backend  Backend        `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig tunes the sqlite backend.
type DatabaseConfig struct {
	BusyTimeout int `yaml:"busy_timeout"` // milliseconds
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// Watch reloads the checklist when another process changes it.
	Watch *bool `yaml:"watch"`
}

// DefaultsConfig holds the preselected values for new tasks.
type DefaultsConfig struct {
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	watch := true
	return Config{
		Storage: StorageConfig{
			Backend:  BackendJSON,
			Database: DatabaseConfig{BusyTimeout: 5000},
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
			Watch: &watch,
		},
		Defaults: DefaultsConfig{
			Category: "essentials",
			Priority: "medium",
		},
		DateFormat: "2006-01-02",
	}
}

// Load reads and validates configuration from the given path and sets the
// data directory. If configPath is empty or doesn't exist, returns defaults
// with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Parse(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse reads configuration and applies defaults without validating it.
func Parse(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Database.BusyTimeout == 0 {
		c.Storage.Database.BusyTimeout = defaults.Storage.Database.BusyTimeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Watch == nil {
		c.TUI.Watch = defaults.TUI.Watch
	}
	if c.Defaults.Category == "" {
		c.Defaults.Category = defaults.Defaults.Category
	}
	if c.Defaults.Priority == "" {
		c.Defaults.Priority = defaults.Defaults.Priority
	}
	if c.DateFormat == "" {
		c.DateFormat = defaults.DateFormat
	}
}

// ChecklistFile returns the JSON backend's storage file.
func (c *Config) ChecklistFile() string {
	return filepath.Join(c.DataDir, "trip-todo-storage.json")
}

// BusyTimeout returns the sqlite busy timeout as a duration.
func (c *Config) BusyTimeout() time.Duration {
	return time.Duration(c.Storage.Database.BusyTimeout) * time.Millisecond
}

// WatchEnabled reports whether the TUI should follow external changes.
func (c *Config) WatchEnabled() bool {
	return c.TUI.Watch == nil || *c.TUI.Watch
}
