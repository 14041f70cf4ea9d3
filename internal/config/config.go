// Package config resolves where tally keeps its data and how it logs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const appName = "tally"

// Environment variables read by Load.
const (
	EnvDataDir  = "TALLY_DIR"
	EnvDBPath   = "TALLY_DB_PATH"
	EnvLogLevel = "TALLY_LOG_LEVEL"
)

// LogLevels accepted by Validate.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the resolved runtime configuration.
type Config struct {
	DataDir  string
	DBPath   string
	LogLevel string
}

// Load reads the configuration from the environment, with defaults.
func Load() *Config {
	return &Config{
		DataDir:  GetDataDir(),
		DBPath:   GetDBPath(),
		LogLevel: getEnv(EnvLogLevel, "info"),
	}
}

// BackupDir is the directory that receives backup snapshots.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty")
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	} else if c.DBPath != ":memory:" {
		if info, err := os.Stat(c.DBPath); err == nil && info.IsDir() {
			problems = append(problems, fmt.Sprintf("database path '%s' is a directory", c.DBPath))
		}
	}

	validLevel := false
	for _, level := range LogLevels {
		if strings.EqualFold(c.LogLevel, level) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, LogLevels))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// GetDataDir resolves the base directory for all tally storage: TALLY_DIR first, then the
// XDG data home, then ~/.local/share.
func GetDataDir() string {
	if explicit := os.Getenv(EnvDataDir); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, appName)
}

// GetDBPath returns the SQLite database file, honouring TALLY_DB_PATH.
func GetDBPath() string {
	if explicit := os.Getenv(EnvDBPath); explicit != "" {
		return explicit
	}
	return filepath.Join(GetDataDir(), "tally.db")
}

// GetBackupDir returns the directory that stores backup snapshots.
func GetBackupDir() string {
	return filepath.Join(GetDataDir(), "backups")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
