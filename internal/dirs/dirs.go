// Package dirs provides XDG Base Directory Specification compliant paths
// for logspeed directories.
package dirs

import (
	"os"
	"path/filepath"
)

// LocalDirName is the per-project config directory looked up in the working directory.
const LocalDirName = ".logspeed"

// ConfigDir returns the logspeed configuration directory.
// Resolution order: XDG_CONFIG_HOME/logspeed > ~/.config/logspeed.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "logspeed")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "logspeed")
	}
	return filepath.Join(home, ".config", "logspeed")
}

// LocalConfigDir returns dir/.logspeed if it exists, or "" otherwise.
func LocalConfigDir(dir string) string {
	candidate := filepath.Join(dir, LocalDirName)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return ""
}
