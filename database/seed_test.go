package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/pos-engine/config"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestSeedInstallsBaseData(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	var menuCount, tableCount, mappingCount int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&menuCount).Error)
	require.NoError(t, db.Model(&models.Table{}).Count(&tableCount).Error)
	require.NoError(t, db.Model(&models.PrinterMapping{}).Count(&mappingCount).Error)
	assert.EqualValues(t, 9, menuCount)
	assert.EqualValues(t, 7, tableCount)
	assert.EqualValues(t, 1, mappingCount)

	// the counter row is installed up front, not left to first use
	var counter models.Counter
	require.NoError(t, db.Where("name = ?", models.OrderNumberCounter).First(&counter).Error)
	assert.Equal(t, models.OrderNumberSeed, counter.Value)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var menuCount, counterCount int64
	require.NoError(t, db.Model(&models.MenuItem{}).Count(&menuCount).Error)
	require.NoError(t, db.Model(&models.Counter{}).Count(&counterCount).Error)
	assert.EqualValues(t, 9, menuCount)
	assert.EqualValues(t, 1, counterCount)
}

func TestSeedDoesNotResetALiveCounter(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Seed(db))

	orders := services.NewOrderService(db, services.Pricing{TaxRate: 0.0825},
		services.NewTableService(db), services.NewPrintService(db, nil))
	order, err := orders.CreateOrder(services.CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	assert.Equal(t, 1001, order.OrderNumber)

	// a restart re-runs Seed; numbering must continue, not rewind
	require.NoError(t, Seed(db))
	next, err := orders.CreateOrder(services.CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	assert.Equal(t, 1002, next.OrderNumber)
}
