package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTransitions(t *testing.T) {
	// the happy kitchen path
	order := Order{Status: OrderOpen}
	for _, to := range []OrderStatus{OrderSent, OrderPreparing, OrderReady, OrderServed, OrderPaid} {
		require.NoError(t, order.TransitionTo(to))
	}
	assert.True(t, order.Closed())

	// terminal states accept nothing
	assert.Error(t, order.TransitionTo(OrderVoided))

	// skipping a step is rejected
	order = Order{Status: OrderOpen}
	assert.Error(t, order.TransitionTo(OrderReady))

	// no going backwards
	order = Order{Status: OrderReady}
	assert.Error(t, order.TransitionTo(OrderPreparing))

	// paid and voided are reachable from any live state
	for _, from := range []OrderStatus{OrderOpen, OrderSent, OrderPreparing, OrderReady, OrderServed} {
		order = Order{Status: from}
		assert.NoError(t, order.TransitionTo(OrderVoided), "void from %s", from)
		order = Order{Status: from}
		assert.NoError(t, order.TransitionTo(OrderPaid), "pay from %s", from)
	}

	voided := Order{Status: OrderVoided}
	assert.Error(t, voided.TransitionTo(OrderPaid))
}

func TestOrderItemMarkSentOnce(t *testing.T) {
	item := OrderItem{Status: ItemPending}
	first := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	require.NoError(t, item.MarkSent(first))
	assert.Equal(t, ItemSent, item.Status)
	require.NotNil(t, item.SentAt)
	assert.Equal(t, first, *item.SentAt)

	// the stamp never moves
	assert.Error(t, item.MarkSent(first.Add(time.Hour)))
	assert.Equal(t, first, *item.SentAt)
}

func TestTableOccupyRelease(t *testing.T) {
	table := Table{Status: TableAvailable}

	require.NoError(t, table.Occupy(7))
	assert.Equal(t, TableOccupied, table.Status)
	assert.True(t, table.InvariantOK())

	assert.Error(t, table.Occupy(8), "double seat")

	require.NoError(t, table.Release(TableCleaning))
	assert.Nil(t, table.CurrentOrderID)
	assert.True(t, table.InvariantOK())

	assert.Error(t, table.Release(TableAvailable), "release is occupied-only")

	// reserved tables can be seated too
	table = Table{Status: TableReserved}
	assert.NoError(t, table.Occupy(9))

	table = Table{Status: TableCleaning}
	assert.Error(t, table.Release(TableReserved))
}

func TestTableSetStatusGuardsOccupancy(t *testing.T) {
	table := Table{Status: TableCleaning}
	require.NoError(t, table.SetStatus(TableAvailable))

	// occupied is only reachable through Occupy
	assert.Error(t, table.SetStatus(TableOccupied))

	orderID := uint(7)
	table = Table{Status: TableOccupied, CurrentOrderID: &orderID}
	assert.Error(t, table.SetStatus(TableAvailable), "manual edits keep their hands off seated tables")

	table = Table{Status: TableAvailable}
	assert.Error(t, table.SetStatus("broken"))
}

func TestPaymentResolveOnce(t *testing.T) {
	payment := Payment{Status: PaymentPending}
	require.NoError(t, payment.Resolve(PaymentApproved))
	assert.Error(t, payment.Resolve(PaymentDeclined), "approved payments are immutable")

	payment = Payment{Status: PaymentPending}
	assert.Error(t, payment.Resolve(PaymentPending))
}

func TestPrintJobAdvance(t *testing.T) {
	job := PrintJob{Status: PrintQueued}
	require.NoError(t, job.Advance(PrintPrinting))
	require.NoError(t, job.Advance(PrintCompleted))
	assert.Error(t, job.Advance(PrintFailed))

	job = PrintJob{Status: PrintQueued}
	assert.NoError(t, job.Advance(PrintFailed))

	job = PrintJob{Status: PrintQueued}
	assert.Error(t, job.Advance(PrintCompleted), "completion requires a printing phase")
}
