package datastore

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GetPark returns the park with the given reference, or ErrNotFound.
func (ds *DataStore) GetPark(reference string) (*Park, error) {
	var park Park
	if err := ds.DB.Where("reference = ?", reference).First(&park).Error; err != nil {
		return nil, fmt.Errorf("getting park %s: %w", reference, notFound(err))
	}
	return &park, nil
}

// UpsertPark inserts the park or updates the existing row with the same
// reference. The hunt counter of an existing row is preserved; every other
// field is taken from the argument.
func (ds *DataStore) UpsertPark(park *Park) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var existing Park
		err := tx.Where("reference = ?", park.Reference).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(park).Error
		case err != nil:
			return err
		default:
			park.ID = existing.ID
			park.Hunts = existing.Hunts
			return tx.Save(park).Error
		}
	})
	if err != nil {
		return fmt.Errorf("upserting park %s: %w", park.Reference, err)
	}
	return nil
}

// IncrementParkHunts adds one to a park's hunt counter, creating a minimal
// row when the park is not yet known.
func (ds *DataStore) IncrementParkHunts(reference string) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var park Park
		err := tx.Where("reference = ?", reference).First(&park).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&Park{Reference: reference, Hunts: 1}).Error
		case err != nil:
			return err
		default:
			return tx.Model(&park).Update("hunts", park.Hunts+1).Error
		}
	})
	if err != nil {
		return fmt.Errorf("incrementing hunts for park %s: %w", reference, err)
	}
	return nil
}

// SetParkHunts overwrites a park's hunt counter, creating a minimal row when
// the park is not yet known. Used when importing hunter statistics; an
// import after in-app hunting overwrites the local count.
func (ds *DataStore) SetParkHunts(reference string, hunts int) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var park Park
		err := tx.Where("reference = ?", reference).First(&park).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&Park{Reference: reference, Hunts: hunts}).Error
		case err != nil:
			return err
		default:
			return tx.Model(&park).Update("hunts", hunts).Error
		}
	})
	if err != nil {
		return fmt.Errorf("setting hunts for park %s: %w", reference, err)
	}
	return nil
}
