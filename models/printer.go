package models

import "time"

// Printer is configuration consumed read-only by the dispatcher; actual
// transmission to the device is the printer agent's job.
type Printer struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	Name             string            `gorm:"type:varchar(100);not null" json:"name"`
	ConnectionType   PrinterConnection `gorm:"type:varchar(20);not null" json:"connection_type"`
	DeviceIdentifier string            `gorm:"type:varchar(255);not null" json:"device_identifier"`
	CreatedAt        time.Time         `gorm:"not null" json:"created_at"`
}

// PrinterMapping binds logical roles to devices. A single row is kept and
// edited in place; a nil column means the role is unconfigured.
type PrinterMapping struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	KitchenPrinterID *uint     `json:"kitchen_printer_id"`
	ReceiptPrinterID *uint     `json:"receipt_printer_id"`
	BarPrinterID     *uint     `json:"bar_printer_id"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}
