package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a payment account and its running balance.
// Balance is the sum of every delta applied by incomes, expenses,
// transactions and payroll payments referencing this account.
type Account struct {
	ID         string          `gorm:"primaryKey;size:36"`
	UserID     string          `gorm:"index;size:36;not null"`
	Name       string          `gorm:"size:64;not null"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Commission decimal.Decimal `gorm:"type:decimal(8,4);not null"` // fraction in [0,1], e.g. 0.05 for 5%
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
