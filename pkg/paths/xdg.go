// Package paths provides XDG-compliant path resolution for conductor.
//
// Resolution order:
// 1. XDG env vars → $XDG_*_HOME/conductor
// 2. Platform defaults → ~/.config/conductor, ~/.local/state/conductor
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "conductor"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the conductor configuration directory.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// ConfigDirs returns the directories searched for a config file:
// $XDG_CONFIG_HOME/conductor, then ~/.config/conductor when different.
func ConfigDirs() []string {
	var dirs []string
	if dir := ConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		fallback := filepath.Join(homeDir, ".config", appName)
		if len(dirs) == 0 || dirs[0] != fallback {
			dirs = append(dirs, fallback)
		}
	}
	return dirs
}

// StateDir returns the conductor state directory, used for log files.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, appName)
}

// DefaultLogFile is the log file used when the file sink is enabled
// without a path.
func DefaultLogFile() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, appName+".log")
}

// Expand expands a leading ~ and environment variables in path.
func Expand(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
