package models

import (
	"time"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber int         `gorm:"uniqueIndex;not null" json:"order_number"`
	Type        OrderType   `gorm:"type:varchar(20);not null" json:"type"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	TableID     *uint       `gorm:"index" json:"table_id,omitempty"`
	// TableLabel is snapshotted at create time so tickets survive table renames.
	TableLabel      string     `gorm:"type:varchar(50)" json:"table_label,omitempty"`
	ServerID        *uint      `gorm:"index" json:"server_id,omitempty"`
	Subtotal        float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	Tax             float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"tax"`
	Tip             float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"tip"`
	Discount        float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount"`
	Total           float64    `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	GuestCount      int        `json:"guest_count"`
	Notes           string     `gorm:"type:text" json:"notes"`
	DeliveryAddress string     `gorm:"type:varchar(255)" json:"delivery_address,omitempty"`
	DeliveryContact string     `gorm:"type:varchar(100)" json:"delivery_contact,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// TransitionTo is the only writer of Order.Status.
func (o *Order) TransitionTo(to OrderStatus) error {
	if !o.Status.canTransition(to) {
		return invalidTransition("order", o.Status, to)
	}
	o.Status = to
	return nil
}

// Closed reports whether the order can no longer be mutated.
func (o *Order) Closed() bool { return o.Status.Terminal() }
