package models

import "time"

// Table invariant: status == occupied exactly when CurrentOrderID is set.
// Both fields flip together through Occupy/Release.
type Table struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Label          string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"label"`
	Seats          int         `gorm:"not null;default:4" json:"seats"`
	Status         TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CurrentOrderID *uint       `json:"current_order_id,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

// Occupy binds the table to a live order.
func (t *Table) Occupy(orderID uint) error {
	if t.Status != TableAvailable && t.Status != TableReserved {
		return invalidTransition("table", t.Status, TableOccupied)
	}
	t.Status = TableOccupied
	t.CurrentOrderID = &orderID
	return nil
}

// Release clears the order binding. Target is cleaning after settlement,
// available after a void.
func (t *Table) Release(to TableStatus) error {
	if t.Status != TableOccupied {
		return invalidTransition("table", t.Status, to)
	}
	if to != TableCleaning && to != TableAvailable {
		return invalidTransition("table", t.Status, to)
	}
	t.Status = to
	t.CurrentOrderID = nil
	return nil
}

// SetStatus handles manual staff edits (cleaning done, reserve a table).
// Moving into or out of occupied by hand would break the order binding.
func (t *Table) SetStatus(to TableStatus) error {
	if !to.Valid() || to == TableOccupied || t.Status == TableOccupied {
		return invalidTransition("table", t.Status, to)
	}
	t.Status = to
	return nil
}

// InvariantOK reports the occupancy iff-invariant.
func (t *Table) InvariantOK() bool {
	return (t.Status == TableOccupied) == (t.CurrentOrderID != nil)
}
