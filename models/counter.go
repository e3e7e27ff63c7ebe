package models

// Counter backs monotonic sequences (order numbers). The row is locked and
// bumped inside the transaction that consumes the value, so allocation is
// atomic across processes and survives restarts.
type Counter struct {
	Name  string `gorm:"primaryKey;type:varchar(50)"`
	Value int    `gorm:"not null"`
}

const (
	OrderNumberCounter = "order_number"

	// OrderNumberSeed is one below the first human-facing number.
	OrderNumberSeed = 1000
)
