package models

import "time"

// PrintJob is produced with status queued; advancing it to printing,
// completed or failed belongs to the printer agent consuming the queue.
type PrintJob struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OrderID   *uint          `gorm:"index" json:"order_id,omitempty"`
	PaymentID *uint          `json:"payment_id,omitempty"`
	PrinterID uint           `gorm:"not null" json:"printer_id"`
	Printer   Printer        `gorm:"foreignKey:PrinterID" json:"-"`
	JobType   PrintJobType   `gorm:"type:varchar(20);not null" json:"job_type"`
	Payload   string         `gorm:"type:text;not null" json:"payload"`
	Status    PrintJobStatus `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

// Advance is the only writer of PrintJob.Status. This engine never calls it;
// it validates the agent's updates when they come back through the API.
func (j *PrintJob) Advance(to PrintJobStatus) error {
	ok := false
	switch j.Status {
	case PrintQueued:
		ok = to == PrintPrinting || to == PrintFailed
	case PrintPrinting:
		ok = to == PrintCompleted || to == PrintFailed
	}
	if !ok {
		return invalidTransition("print job", j.Status, to)
	}
	j.Status = to
	return nil
}
