package models

import (
	"time"
)

// OrderItem snapshots the menu name and price at add time; later catalog
// edits never alter historical lines.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint            `gorm:"not null" json:"menu_item_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes      string          `gorm:"type:text" json:"notes"`
	Status     OrderItemStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SentAt     *time.Time      `json:"sent_at,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// MarkSent is the only writer of OrderItem.Status. The transition is one-way
// and stamps SentAt exactly once.
func (i *OrderItem) MarkSent(at time.Time) error {
	if i.Status != ItemPending {
		return invalidTransition("order item", i.Status, ItemSent)
	}
	i.Status = ItemSent
	i.SentAt = &at
	return nil
}

// LineTotal is the item's contribution to the order subtotal.
func (i *OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
