package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
)

// TableService owns table occupancy. Occupy/release run inside the calling
// order transaction so a table cannot be claimed by two racing orders.
type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

func (s *TableService) List() ([]models.Table, error) {
	var tables []models.Table
	if err := s.DB.Order("label asc").Find(&tables).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tables, nil
}

// occupyTx row-locks the table and binds it to the order.
func (s *TableService) occupyTx(tx *gorm.DB, tableID, orderID uint) (*models.Table, error) {
	var table models.Table
	if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("table %d not found", tableID)
		}
		return nil, apperr.Internal(err)
	}
	if err := table.Occupy(orderID); err != nil {
		return nil, apperr.Conflictf("table %s is %s", table.Label, table.Status)
	}
	if err := tx.Save(&table).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &table, nil
}

// releaseTx frees the order's table, if any. Cleaning after settlement,
// available after a void.
func (s *TableService) releaseTx(tx *gorm.DB, tableID uint, to models.TableStatus) (*models.Table, error) {
	var table models.Table
	if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the table was deleted under a live order; nothing to release
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	if err := table.Release(to); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := tx.Save(&table).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &table, nil
}

// SetStatus handles manual staff edits (mark cleaning done, reserve). The
// occupied state is reserved for the order lifecycle and rejected here.
func (s *TableService) SetStatus(tableID uint, to models.TableStatus) (*models.Table, error) {
	if !to.Valid() {
		return nil, apperr.Validationf("invalid table status %q", to)
	}
	var table models.Table
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("table %d not found", tableID)
			}
			return apperr.Internal(err)
		}
		if err := table.SetStatus(to); err != nil {
			return apperr.Conflictf("table %s cannot move from %s to %s", table.Label, table.Status, to)
		}
		return tx.Save(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
