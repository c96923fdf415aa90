package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/trek/internal/core/config"
)

// Flags holds the global flag values shared by every command.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	ProfilerPort int

	// Config is parsed in the Before hook. It is validated unless the
	// command runs without opening the checklist.
	Config *config.Config
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/trek/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "trek", "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/trek.
func DefaultDataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "trek")
}

// xdgDir returns the directory named by env, falling back to the given
// path under the home directory.
func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}
