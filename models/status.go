package models

import "fmt"

// Every lifecycle field is a typed enum with a single transition writer on
// its entity. Raw status writes from handlers or services are a bug.

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeout  OrderType = "takeout"
	OrderDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderDineIn, OrderTakeout, OrderDelivery:
		return true
	}
	return false
}

// Label is the human form used on tickets and receipts.
func (t OrderType) Label() string {
	switch t {
	case OrderDineIn:
		return "Dine-In"
	case OrderTakeout:
		return "Takeout"
	case OrderDelivery:
		return "Delivery"
	}
	return string(t)
}

type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderSent      OrderStatus = "sent"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderPaid      OrderStatus = "paid"
	OrderVoided    OrderStatus = "voided"
)

// orderFlow holds the forward kitchen edges; paid and voided are handled in
// canTransition because they are reachable from any live state.
var orderFlow = map[OrderStatus][]OrderStatus{
	OrderOpen:      {OrderSent},
	OrderSent:      {OrderPreparing},
	OrderPreparing: {OrderReady},
	OrderReady:     {OrderServed},
	OrderServed:    {},
}

func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderVoided
}

func (s OrderStatus) canTransition(to OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if to == OrderPaid || to == OrderVoided {
		return true
	}
	for _, next := range orderFlow[s] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderItemStatus string

const (
	ItemPending OrderItemStatus = "pending"
	ItemSent    OrderItemStatus = "sent"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayCredit PaymentMethod = "credit"
	PayDebit  PaymentMethod = "debit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCredit, PayDebit:
		return true
	}
	return false
}

// Cash reports whether the tender needs change handling.
func (m PaymentMethod) Cash() bool { return m == PayCash }

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentDeclined PaymentStatus = "declined"
)

type PrintJobType string

const (
	JobKitchen PrintJobType = "kitchen_ticket"
	JobReceipt PrintJobType = "receipt"
)

type PrintJobStatus string

const (
	PrintQueued    PrintJobStatus = "queued"
	PrintPrinting  PrintJobStatus = "printing"
	PrintCompleted PrintJobStatus = "completed"
	PrintFailed    PrintJobStatus = "failed"
)

type PrinterConnection string

const (
	ConnEscpos PrinterConnection = "escpos"
	ConnDriver PrinterConnection = "driver"
)

func (c PrinterConnection) Valid() bool {
	return c == ConnEscpos || c == ConnDriver
}

func invalidTransition(entity string, from, to any) error {
	return fmt.Errorf("%s cannot transition from %v to %v", entity, from, to)
}
