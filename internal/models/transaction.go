package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionWithdrawal = "withdrawal"
	TransactionTransfer   = "accountTransfer"
)

// Transaction is a withdrawal from one account or a transfer between
// two accounts. DestinationAccountID is set only for transfers.
type Transaction struct {
	ID                   string          `gorm:"primaryKey;size:36"`
	UserID               string          `gorm:"index;size:36;not null"`
	Type                 string          `gorm:"size:32;index;not null"` // withdrawal / accountTransfer
	AccountID            string          `gorm:"index;size:36;not null"`
	DestinationAccountID *string         `gorm:"index;size:36"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date                 time.Time       `gorm:"index;not null"`
	Description          string          `gorm:"size:255"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
