package services

import (
	"math"

	"github.com/yeremiapane/pos-engine/models"
)

// Pricing recomputes the financial block of an order. Pure arithmetic, no
// state beyond the process-wide tax rate.
type Pricing struct {
	TaxRate float64
}

// Round2 rounds to cents, half away from zero. The rounding mode is part of
// the engine's contract and pinned by tests.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Recalculate rewrites subtotal, tax and total from the given item set.
// Subtotal counts every item regardless of status. Tax follows the subtotal;
// tip and discount only shift the total.
func (p Pricing) Recalculate(order *models.Order, items []models.OrderItem) {
	subtotal := 0.0
	for i := range items {
		subtotal += items[i].LineTotal()
	}
	order.Subtotal = Round2(subtotal)
	order.Tax = Round2(order.Subtotal * p.TaxRate)
	order.Total = Round2(order.Subtotal + order.Tax + order.Tip - order.Discount)
}

// RecalculateTotal recomputes the total only, for tip/discount changes that
// leave the subtotal (and therefore the tax) untouched.
func (p Pricing) RecalculateTotal(order *models.Order) {
	order.Total = Round2(order.Subtotal + order.Tax + order.Tip - order.Discount)
}
