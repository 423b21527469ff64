package datastore

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withPredicates applies a predicate slice to a query with AND semantics.
// An empty slice leaves the query unrestricted.
func withPredicates(query *gorm.DB, predicates []clause.Expression) *gorm.DB {
	if len(predicates) == 0 {
		return query
	}
	return query.Clauses(clause.Where{Exprs: predicates})
}

// ReplaceAllSpots atomically replaces the entire spot table with the given
// batch. Readers never observe a partially written collection: the delete
// and inserts commit together or roll back together.
func (ds *DataStore) ReplaceAllSpots(spots []Spot) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Spot{}).Error; err != nil {
			return fmt.Errorf("clearing spots: %w", err)
		}
		if len(spots) == 0 {
			return nil
		}
		if err := tx.Create(&spots).Error; err != nil {
			return fmt.Errorf("inserting spots: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing spots: %w", err)
	}
	return nil
}

// GetSpots returns all stored spots matching the given predicates.
func (ds *DataStore) GetSpots(predicates []clause.Expression) ([]Spot, error) {
	var spots []Spot
	query := withPredicates(ds.DB.Model(&Spot{}), predicates)
	if err := query.Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("getting spots: %w", err)
	}
	return spots, nil
}

// GetSpot retrieves a single spot by its id.
func (ds *DataStore) GetSpot(id uint) (*Spot, error) {
	var spot Spot
	if err := ds.DB.First(&spot, id).Error; err != nil {
		return nil, fmt.Errorf("getting spot %d: %w", id, notFound(err))
	}
	return &spot, nil
}

// GetSpotsByMode returns all spots with the given mode, ignoring the view
// filters.
func (ds *DataStore) GetSpotsByMode(mode string) ([]Spot, error) {
	var spots []Spot
	if err := ds.DB.Where("mode = ?", mode).Find(&spots).Error; err != nil {
		return nil, fmt.Errorf("getting spots by mode %s: %w", mode, err)
	}
	return spots, nil
}

// GetSpotComments returns the stored comments for an activation, newest
// first.
func (ds *DataStore) GetSpotComments(activator, park string) ([]SpotComment, error) {
	var comments []SpotComment
	err := ds.DB.
		Where("activator = ? AND park = ?", activator, park).
		Order("spot_time DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("getting spot comments for %s at %s: %w", activator, park, err)
	}
	return comments, nil
}

// ReplaceSpotComments replaces the stored comments for one activator/park
// pair with a freshly fetched set.
func (ds *DataStore) ReplaceSpotComments(activator, park string, comments []SpotComment) error {
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activator = ? AND park = ?", activator, park).
			Delete(&SpotComment{}).Error; err != nil {
			return fmt.Errorf("clearing comments: %w", err)
		}
		if len(comments) == 0 {
			return nil
		}
		for i := range comments {
			comments[i].Activator = activator
			comments[i].Park = park
		}
		if err := tx.Create(&comments).Error; err != nil {
			return fmt.Errorf("inserting comments: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replacing comments for %s at %s: %w", activator, park, err)
	}
	return nil
}
