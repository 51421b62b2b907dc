// Package config resolves file paths and external service settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/financeflow/financeflow.db"

// DatabasePath returns the configured SQLite file with ~ and $VARS expanded.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if strings.TrimSpace(path) == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// Dir is where financeflow keeps config.yaml and OAuth tokens:
// $XDG_CONFIG_HOME/financeflow, falling back to ~/.config/financeflow.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "financeflow")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".financeflow"
	}
	return filepath.Join(home, ".config", "financeflow")
}

// ExpandPath resolves a leading ~ to the home directory, then expands
// environment variables.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return ""
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}
	return os.ExpandEnv(path)
}
