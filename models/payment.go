package models

import (
	"time"
)

// Payment records a settlement. Once approved it is immutable; refunds are a
// separate operation outside this engine.
type Payment struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrderID        uint          `gorm:"not null;index" json:"order_id"`
	Order          Order         `gorm:"foreignKey:OrderID" json:"-"`
	Method         PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	AmountDue      float64       `gorm:"type:decimal(10,2);not null" json:"amount_due"`
	AmountTendered float64       `gorm:"type:decimal(10,2);not null" json:"amount_tendered"`
	ChangeDue      float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"change_due"`
	Tip            float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"tip"`
	Status         PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference      string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"reference"`
	ProcessedBy    string        `gorm:"type:varchar(100)" json:"processed_by"`
	CreatedAt      time.Time     `gorm:"not null" json:"created_at"`
}

// Resolve is the only writer of Payment.Status.
func (p *Payment) Resolve(to PaymentStatus) error {
	if p.Status != PaymentPending {
		return invalidTransition("payment", p.Status, to)
	}
	if to != PaymentApproved && to != PaymentDeclined {
		return invalidTransition("payment", p.Status, to)
	}
	p.Status = to
	return nil
}
