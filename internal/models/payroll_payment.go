package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollPayment debits its payment account by TotalAmount and owns a
// companion Expense row inserted in the same transaction.
type PayrollPayment struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index;size:36;not null"`
	EmployeeID  string          `gorm:"index;size:36;not null"`
	AccountID   string          `gorm:"index;size:36;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Month       int             `gorm:"index;not null"` // 1-12
	Year        int             `gorm:"index;not null"`
	Date        time.Time       `gorm:"not null"`
	Description string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
