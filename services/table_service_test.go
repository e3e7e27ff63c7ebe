package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
)

func TestTableSetStatus(t *testing.T) {
	db := setupTestDB(t)
	_, _, tables, _ := newServices(db)
	table := seedTable(t, db, "T4", 6)

	got, err := tables.SetStatus(table.ID, models.TableReserved)
	require.NoError(t, err)
	assert.Equal(t, models.TableReserved, got.Status)

	_, err = tables.SetStatus(table.ID, "broken")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = tables.SetStatus(9999, models.TableCleaning)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// occupied is managed by the order lifecycle, not by hand
	_, err = tables.SetStatus(table.ID, models.TableOccupied)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSetStatusRejectedWhileSeated(t *testing.T) {
	db := setupTestDB(t)
	orders, _, tables, _ := newServices(db)
	table := seedTable(t, db, "T5", 8)

	_, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderDineIn, TableID: &table.ID})
	require.NoError(t, err)

	_, err = tables.SetStatus(table.ID, models.TableAvailable)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestTableList(t *testing.T) {
	db := setupTestDB(t)
	_, _, tables, _ := newServices(db)
	seedTable(t, db, "T2", 4)
	seedTable(t, db, "B1", 2)

	list, err := tables.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B1", list[0].Label, "sorted by label")
}
