package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/pos-engine/config"
	"github.com/yeremiapane/pos-engine/models"
)

// testTaxRate matches the default configuration.
const testTaxRate = 0.0825

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one named in-memory database per test; shared cache keeps the pool's
	// connections on the same database
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, sku, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{SKU: sku, Name: name, Price: price, Category: "Test", IsAvailable: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}

func seedTable(t *testing.T, db *gorm.DB, label string, seats int) models.Table {
	t.Helper()
	table := models.Table{Label: label, Seats: seats, Status: models.TableAvailable}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return table
}

func newServices(db *gorm.DB) (*OrderService, *PaymentService, *TableService, *PrintService) {
	pricing := Pricing{TaxRate: testTaxRate}
	tables := NewTableService(db)
	printing := NewPrintService(db, nil)
	orders := NewOrderService(db, pricing, tables, printing)
	payments := NewPaymentService(db, pricing, tables, printing)
	return orders, payments, tables, printing
}
