package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense debits its payment account by Amount. Expenses created as
// the companion of a payroll payment carry that payment's id in
// PayrollPaymentID and share its lifecycle.
type Expense struct {
	ID               string          `gorm:"primaryKey;size:36"`
	UserID           string          `gorm:"index;size:36;not null"`
	AccountID        string          `gorm:"index;size:36;not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Category         string          `gorm:"size:64"`
	Description      string          `gorm:"size:255"`
	Date             time.Time       `gorm:"index;not null"`
	PayrollPaymentID *string         `gorm:"index;size:36"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
