package datastore

import (
	"fmt"

	"gorm.io/gorm/clause"
)

// SaveQSO persists a logged contact and returns its id.
func (ds *DataStore) SaveQSO(qso *QSO) (uint, error) {
	if err := ds.DB.Create(qso).Error; err != nil {
		return 0, fmt.Errorf("saving qso: %w", err)
	}
	return qso.ID, nil
}

// GetQSO retrieves a logged contact by id.
func (ds *DataStore) GetQSO(id uint) (*QSO, error) {
	var qso QSO
	if err := ds.DB.First(&qso, id).Error; err != nil {
		return nil, fmt.Errorf("getting qso %d: %w", id, notFound(err))
	}
	return &qso, nil
}

// GetAppQSOs returns the contacts logged through this application, as
// opposed to imported ones.
func (ds *DataStore) GetAppQSOs() ([]QSO, error) {
	var qsos []QSO
	if err := ds.DB.Where("from_app = ?", true).Find(&qsos).Error; err != nil {
		return nil, fmt.Errorf("getting app qsos: %w", err)
	}
	return qsos, nil
}

// CountQSOs counts logged contacts matching the given predicates.
func (ds *DataStore) CountQSOs(predicates []clause.Expression) (int64, error) {
	var count int64
	query := withPredicates(ds.DB.Model(&QSO{}), predicates)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting qsos: %w", err)
	}
	return count, nil
}

// FindQSOs returns logged contacts matching the given predicates.
func (ds *DataStore) FindQSOs(predicates []clause.Expression) ([]QSO, error) {
	var qsos []QSO
	query := withPredicates(ds.DB.Model(&QSO{}), predicates)
	if err := query.Find(&qsos).Error; err != nil {
		return nil, fmt.Errorf("finding qsos: %w", err)
	}
	return qsos, nil
}
