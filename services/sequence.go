package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/pos-engine/models"
)

// nextOrderNumber bumps the store-backed counter inside the caller's
// transaction. The row lock serializes allocation across workers; the number
// is only consumed if the surrounding transaction commits. The row is
// installed by the seeder; lazy creation here is a fallback for unseeded
// stores.
func nextOrderNumber(tx *gorm.DB) (int, error) {
	var counter models.Counter
	err := lockForUpdate(tx).Where("name = ?", models.OrderNumberCounter).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.Counter{Name: models.OrderNumberCounter, Value: models.OrderNumberSeed}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	counter.Value++
	if err := tx.Model(&models.Counter{}).Where("name = ?", counter.Name).
		Update("value", counter.Value).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// lockForUpdate adds row locking on engines that support it. SQLite has a
// single writer per database, so the clause is unsupported and unnecessary.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
