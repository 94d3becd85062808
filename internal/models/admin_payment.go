package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminPayment describes a recurring administrative obligation
// (rent, subscriptions, taxes). It does not touch account balances;
// its only side effect is the reminder derived from DueDate.
type AdminPayment struct {
	ID          string          `gorm:"primaryKey;size:36"`
	UserID      string          `gorm:"index;size:36;not null"`
	Name        string          `gorm:"size:128;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DueDate     *time.Time      `gorm:"index"`
	Description string          `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
