package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a payroll recipient. MonthlySalary is the baseline used
// to derive bonus amounts in the payroll report.
type Employee struct {
	ID            string          `gorm:"primaryKey;size:36"`
	UserID        string          `gorm:"index;size:36;not null"`
	Name          string          `gorm:"size:128;not null"`
	Role          string          `gorm:"size:64"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
