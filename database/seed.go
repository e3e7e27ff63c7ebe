package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/models"
)

// Seed installs the starter catalog, floor plan and the single printer
// mapping row. Idempotent: it only writes into empty tables.
func Seed(db *gorm.DB) error {
	if err := seedMenu(db); err != nil {
		return err
	}
	if err := seedTables(db); err != nil {
		return err
	}
	if err := seedPrinterMapping(db); err != nil {
		return err
	}
	return seedCounters(db)
}

func seedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.MenuItem{
		{SKU: "DS-01", Name: "Shrimp Dumplings", Description: "Har gow with sweet shrimp and bamboo shoots.", Price: 7.50, Category: "Dimsum", IsAvailable: true},
		{SKU: "DS-02", Name: "Pork Siu Mai", Description: "Steamed pork dumplings with ginger and scallion.", Price: 6.75, Category: "Dimsum", IsAvailable: true},
		{SKU: "DS-03", Name: "Veggie Spring Rolls", Description: "Crisp rolls with cabbage, carrots, and glass noodles.", Price: 5.25, Category: "Dimsum", IsAvailable: true},
		{SKU: "LN-01", Name: "Kung Pao Chicken", Description: "Wok-tossed chicken with peanuts and chili glaze.", Price: 12.50, Category: "Lunch", IsAvailable: true},
		{SKU: "LN-02", Name: "Beef Chow Fun", Description: "Stir-fried rice noodles with marinated beef and soy.", Price: 13.25, Category: "Lunch", IsAvailable: true},
		{SKU: "LN-03", Name: "Mapo Tofu", Description: "Silken tofu in spicy fermented bean sauce.", Price: 11.00, Category: "Lunch", IsAvailable: true},
		{SKU: "DN-01", Name: "Peking Duck", Description: "Crispy duck with pancakes, scallions, and hoisin.", Price: 28.00, Category: "Dinner", IsAvailable: true},
		{SKU: "DN-02", Name: "Seafood Fried Rice", Description: "Jasmine rice with shrimp, scallop, and egg.", Price: 16.50, Category: "Dinner", IsAvailable: true},
		{SKU: "DN-03", Name: "Szechuan Eggplant", Description: "Braised eggplant with garlic, basil, and chili.", Price: 14.25, Category: "Dinner", IsAvailable: true},
	}
	return db.Create(&items).Error
}

func seedTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tables := []models.Table{
		{Label: "T1", Seats: 4, Status: models.TableAvailable},
		{Label: "T2", Seats: 4, Status: models.TableAvailable},
		{Label: "T3", Seats: 2, Status: models.TableAvailable},
		{Label: "T4", Seats: 6, Status: models.TableAvailable},
		{Label: "T5", Seats: 8, Status: models.TableAvailable},
		{Label: "B1", Seats: 2, Status: models.TableAvailable},
		{Label: "B2", Seats: 2, Status: models.TableAvailable},
	}
	return db.Create(&tables).Error
}

// seedPrinterMapping keeps exactly one mapping row; both roles start
// unconfigured, which the dispatcher treats as "printing disabled".
func seedPrinterMapping(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PrinterMapping{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.PrinterMapping{}).Error
}

// seedCounters installs the order-number row up front. Lazy creation on first
// use exists as a fallback, but two workers racing to create the very first
// row would collide on the primary key; seeding closes that window.
func seedCounters(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Counter{}).
		Where("name = ?", models.OrderNumberCounter).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.Counter{Name: models.OrderNumberCounter, Value: models.OrderNumberSeed}).Error
}
