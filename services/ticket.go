package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/pos-engine/models"
)

// Ticket rendering is a pure function of entity state. The layouts are fixed
// wire formats: the receipt totals block is parsed back by the round-trip
// check and by the frontend preview.

func formatTicketHeader(title string, order *models.Order) string {
	lines := []string{
		title,
		fmt.Sprintf("Order #%d · %s", order.OrderNumber, order.Type.Label()),
	}
	if order.TableLabel != "" {
		lines = append(lines, fmt.Sprintf("Table/Label: %s", order.TableLabel))
	}
	if order.DeliveryAddress != "" {
		lines = append(lines, fmt.Sprintf("Address: %s", order.DeliveryAddress))
	}
	if order.DeliveryContact != "" {
		lines = append(lines, fmt.Sprintf("Contact: %s", order.DeliveryContact))
	}
	lines = append(lines, fmt.Sprintf("Placed: %s", order.CreatedAt.UTC().Format(time.RFC3339)))
	return strings.Join(lines, "\n")
}

// RenderKitchenTicket lists quantities and names only; prices do not belong
// in the kitchen.
func RenderKitchenTicket(order *models.Order, items []models.OrderItem) string {
	lines := []string{formatTicketHeader("KITCHEN TICKET", order), "", "Items:"}
	for i := range items {
		lines = append(lines, fmt.Sprintf("- %d x %s", items[i].Quantity, items[i].Name))
		if items[i].Notes != "" {
			lines = append(lines, fmt.Sprintf("  * %s", items[i].Notes))
		}
	}
	lines = append(lines, "", "Notes: __________________________________")
	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RenderReceipt is the customer-facing rendering with the financial
// breakdown and, when attached, the payment detail.
func RenderReceipt(order *models.Order, items []models.OrderItem, payment *models.Payment) string {
	lines := []string{formatTicketHeader("CUSTOMER RECEIPT", order), "", "Items:"}
	for i := range items {
		lines = append(lines, fmt.Sprintf("- %s (%d @ $%.2f) = $%.2f",
			items[i].Name, items[i].Quantity, items[i].Price, items[i].LineTotal()))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Subtotal: $%.2f", order.Subtotal),
		fmt.Sprintf("Tax: $%.2f", order.Tax),
		fmt.Sprintf("Tip: $%.2f", order.Tip),
		fmt.Sprintf("Discount: -$%.2f", order.Discount),
		fmt.Sprintf("Total: $%.2f", order.Total),
	)
	if payment != nil {
		lines = append(lines,
			"",
			fmt.Sprintf("Payment Method: %s", titleCase(string(payment.Method))),
			fmt.Sprintf("Amount Tendered: $%.2f", payment.AmountTendered),
			fmt.Sprintf("Change Due: $%.2f", payment.ChangeDue),
			fmt.Sprintf("Status: %s", payment.Status),
		)
	}
	return strings.Join(lines, "\n")
}
