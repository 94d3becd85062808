package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reminder statuses.
const (
	ReminderPending  = "pending"
	ReminderResolved = "resolved"
)

// Reminder is a derived notice for an upcoming due date. Exactly one
// of IncomeID / AdminPaymentID is set; a source entity has at most one
// reminder, upserted on save and removed with the source.
type Reminder struct {
	ID             string          `gorm:"primaryKey;size:36"`
	UserID         string          `gorm:"index;size:36;not null"`
	Title          string          `gorm:"size:128;not null"`
	DueDate        time.Time       `gorm:"index;not null"`
	Status         string          `gorm:"size:16;index;not null"` // pending / resolved
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IncomeID       *string         `gorm:"uniqueIndex;size:36"`
	AdminPaymentID *string         `gorm:"uniqueIndex;size:36"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
