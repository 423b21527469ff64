package datastore

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Default operator configuration written on first startup. W1AW is the ARRL
// headquarters station; the operator is expected to change it.
var defaultUserConfig = UserConfig{
	MyCall:     "W1AW",
	MyGrid6:    "FN31pr",
	DefaultPwr: 1500,
	FlrHost:    "127.0.0.1",
	FlrPort:    12345,
	AdifHost:   "127.0.0.1",
	AdifPort:   12345,
}

// GetUserConfig returns the single operator configuration row, creating it
// with defaults when absent.
func (ds *DataStore) GetUserConfig() (*UserConfig, error) {
	var config UserConfig
	err := ds.DB.First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Debug("creating default user config")
		config = defaultUserConfig
		if err := ds.DB.Create(&config).Error; err != nil {
			return nil, fmt.Errorf("creating default user config: %w", err)
		}
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user config: %w", err)
	}
	return &config, nil
}

// UpdateUserConfig overwrites the operator configuration row. The row id is
// forced to the existing one so exactly one row ever exists.
func (ds *DataStore) UpdateUserConfig(config *UserConfig) error {
	current, err := ds.GetUserConfig()
	if err != nil {
		return err
	}
	config.ID = current.ID
	if err := ds.DB.Save(config).Error; err != nil {
		return fmt.Errorf("updating user config: %w", err)
	}
	return nil
}

// EnsureSchemaVersion rewrites the schema version marker to the given token.
// No migration logic lives here; the marker only records what the running
// code expects.
func (ds *DataStore) EnsureSchemaVersion(version string) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&SchemaVersion{}).Error; err != nil {
			return err
		}
		return tx.Create(&SchemaVersion{Version: version}).Error
	})
	if err != nil {
		return fmt.Errorf("writing schema version: %w", err)
	}
	return nil
}

// SchemaVersion returns the stored schema version token.
func (ds *DataStore) SchemaVersion() (string, error) {
	var marker SchemaVersion
	if err := ds.DB.First(&marker).Error; err != nil {
		return "", fmt.Errorf("reading schema version: %w", notFound(err))
	}
	return marker.Version, nil
}
