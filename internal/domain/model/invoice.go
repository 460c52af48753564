package model

import (
	"time"
)

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice.Amount is the decimal column carried as a string to avoid
// float rounding on money values.
type Invoice struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
