// Package conf loads and holds the process configuration for hunterlog.
//
// This is the process-level configuration (database location, poll interval,
// listen address). The operator's station configuration (callsign, grid,
// power) is persisted in the database and managed through the API.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LogConfig describes the service log output.
type LogConfig struct {
	Enabled    bool   // true to write the service log to a file
	Path       string // log file path
	MaxSize    int    // maximum size in megabytes before rotation
	MaxBackups int    // number of rotated files to retain
	MaxAge     int    // maximum age in days of rotated files
}

// Settings contains all process configuration.
type Settings struct {
	Debug bool // enable debug logging

	Main struct {
		Log LogConfig // service log settings
	}

	Database struct {
		Type   string // "sqlite" or "mysql"
		SQLite struct {
			Path string // path to the sqlite database file
		}
		MySQL struct {
			Host     string
			Port     int
			Username string
			Password string
			Database string
		}
	}

	Poller struct {
		Interval          int  // seconds between spot refresh cycles
		RefreshActivators bool // fetch activator stats for unseen activators
	}

	HTTP struct {
		Listen string // address for the API server, e.g. ":8080"
	}

	POTA struct {
		BaseURL string // POTA API base URL
		Timeout int    // request timeout in seconds
	}
}

// Load reads configuration from file and environment and returns the
// resulting settings. A missing config file is not an error; defaults apply.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	return settings, nil
}

// SyncViper copies viper's current values into the settings struct so that
// command line flags bound to viper take precedence over the config file.
func SyncViper(settings *Settings) error {
	if err := viper.Unmarshal(settings); err != nil {
		return fmt.Errorf("syncing settings from viper: %w", err)
	}
	return nil
}

func initViper() error {
	viper.SetConfigName("hunterlog")
	viper.SetConfigType("yaml")

	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("hunterlog")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		// no config file, defaults are in effect
	}
	return nil
}

// configPaths returns the directories searched for hunterlog.yaml, current
// working directory first.
func configPaths() []string {
	paths := []string{"."}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "hunterlog"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".hunterlog"))
	}
	return paths
}
