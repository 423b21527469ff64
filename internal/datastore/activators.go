package datastore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GetActivator returns the aggregate row for a base callsign, or
// ErrNotFound. Callers are expected to normalize portable callsigns before
// the lookup.
func (ds *DataStore) GetActivator(baseCall string) (*Activator, error) {
	var activator Activator
	if err := ds.DB.Where("callsign = ?", baseCall).First(&activator).Error; err != nil {
		return nil, fmt.Errorf("getting activator %s: %w", baseCall, notFound(err))
	}
	return &activator, nil
}

// UpsertActivator inserts or updates the aggregate row keyed by the base
// callsign. The operation is idempotent: repeated upserts with the same
// stats leave the row unchanged.
func (ds *DataStore) UpsertActivator(activator *Activator) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var existing Activator
		err := tx.Where("callsign = ?", activator.Callsign).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(activator).Error
		case err != nil:
			return err
		default:
			activator.ID = existing.ID
			return tx.Save(activator).Error
		}
	})
	if err != nil {
		return fmt.Errorf("upserting activator %s: %w", activator.Callsign, err)
	}
	return nil
}
