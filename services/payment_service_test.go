package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
)

func TestSettleCashWithTip(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	table := seedTable(t, db, "T3", 2)
	menuItem := seedMenuItem(t, db, "DS-01", "Shrimp Dumplings", 7.50)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderDineIn, TableID: &table.ID})
	require.NoError(t, err)
	_, _, err = orders.AddItem(order.ID, menuItem.ID, 2, "")
	require.NoError(t, err)

	payment, settled, err := payments.Settle(SettleInput{
		OrderID:     order.ID,
		Method:      models.PayCash,
		Tendered:    20.00,
		Tip:         2.00,
		ProcessedBy: "casey",
	})
	require.NoError(t, err)

	assert.Equal(t, 18.24, payment.AmountDue)
	assert.Equal(t, 20.00, payment.AmountTendered)
	assert.Equal(t, 1.76, payment.ChangeDue)
	assert.Equal(t, 2.00, payment.Tip)
	assert.Equal(t, models.PaymentApproved, payment.Status)
	assert.True(t, strings.HasPrefix(payment.Reference, "PAY-"))
	assert.Equal(t, "casey", payment.ProcessedBy)

	assert.Equal(t, models.OrderPaid, settled.Status)
	require.NotNil(t, settled.PaidAt)
	assert.Equal(t, 15.00, settled.Subtotal)
	assert.Equal(t, 1.24, settled.Tax)
	assert.Equal(t, 18.24, settled.Total)

	// the table heads to cleaning, not straight back to the floor
	var got models.Table
	require.NoError(t, db.First(&got, table.ID).Error)
	assert.Equal(t, models.TableCleaning, got.Status)
	assert.Nil(t, got.CurrentOrderID)
	assert.True(t, got.InvariantOK())
}

func TestSettleCashBoundaries(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	menuItem := seedMenuItem(t, db, "DS-01", "Shrimp Dumplings", 7.50)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	_, updated, err := orders.AddItem(order.ID, menuItem.ID, 2, "")
	require.NoError(t, err)
	due := updated.Total

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: due - 0.01})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "short cash rejected")

	payment, _, err := payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: due})
	require.NoError(t, err)
	assert.Equal(t, 0.0, payment.ChangeDue)
}

func TestSettleCardIgnoresTendered(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	menuItem := seedMenuItem(t, db, "LN-01", "Kung Pao Chicken", 12.50)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	_, updated, err := orders.AddItem(order.ID, menuItem.ID, 1, "")
	require.NoError(t, err)

	// card tenders charge exactly the amount due, whatever was posted
	payment, _, err := payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCredit, Tendered: 100.00})
	require.NoError(t, err)
	assert.Equal(t, updated.Total, payment.AmountTendered)
	assert.Equal(t, 0.0, payment.ChangeDue)
}

func TestSettleValidation(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: "check", Tendered: 10})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10, Tip: -1})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, _, err = payments.Settle(SettleInput{OrderID: 9999, Method: models.PayCash, Tendered: 10})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSettleTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	menuItem := seedMenuItem(t, db, "DS-03", "Veggie Spring Rolls", 5.25)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	_, _, err = orders.AddItem(order.ID, menuItem.ID, 1, "")
	require.NoError(t, err)

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10})
	require.NoError(t, err)

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSettleVoidedOrderConflicts(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	_, err = orders.VoidOrder(order.ID, "mistake")
	require.NoError(t, err)

	_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSettleSurvivesReceiptItemLoadFailure(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	menuItem := seedMenuItem(t, db, "DS-03", "Veggie Spring Rolls", 5.25)

	order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
	require.NoError(t, err)
	_, _, err = orders.AddItem(order.ID, menuItem.ID, 1, "")
	require.NoError(t, err)

	// break the item re-read behind the receipt; settlement must not care
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	payment, settled, err := payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, payment.Status)
	assert.Equal(t, models.OrderPaid, settled.Status)
}

func TestPaymentList(t *testing.T) {
	db := setupTestDB(t)
	orders, payments, _, _ := newServices(db)
	menuItem := seedMenuItem(t, db, "DS-03", "Veggie Spring Rolls", 5.25)

	for i := 0; i < 2; i++ {
		order, err := orders.CreateOrder(CreateOrderInput{Type: models.OrderTakeout})
		require.NoError(t, err)
		_, _, err = orders.AddItem(order.ID, menuItem.ID, 1, "")
		require.NoError(t, err)
		_, _, err = payments.Settle(SettleInput{OrderID: order.ID, Method: models.PayCash, Tendered: 10})
		require.NoError(t, err)
	}

	list, err := payments.List(0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
