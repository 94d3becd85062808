package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceLine is one billed service inside an income. Recurring lines
// carry a renewal obligation and feed the income's derived reminder.
type ServiceLine struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Recurring bool            `json:"recurring"`
}

// Income records a client payment. AmountWithCommission is the actual
// credit applied to the payment account after the account's commission
// is deducted.
type Income struct {
	ID                    string          `gorm:"primaryKey;size:36"`
	UserID                string          `gorm:"index;size:36;not null"`
	AccountID             string          `gorm:"index;size:36;not null"`
	ClientID              string          `gorm:"index;size:36"`
	AmountPaid            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CommissionAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AmountWithCommission  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalContractedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RemainingBalance      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Services              string          `gorm:"type:text"` // serialized []ServiceLine
	RenewalDate           *time.Time      `gorm:"index"`
	Date                  time.Time       `gorm:"index;not null"`
	Description           string          `gorm:"size:255"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ServiceLines decodes the serialized service line items.
// An empty Services field yields an empty slice.
func (i *Income) ServiceLines() ([]ServiceLine, error) {
	if i.Services == "" {
		return nil, nil
	}
	var lines []ServiceLine
	if err := json.Unmarshal([]byte(i.Services), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// SetServiceLines serializes the given line items into the Services field.
func (i *Income) SetServiceLines(lines []ServiceLine) error {
	if len(lines) == 0 {
		i.Services = ""
		return nil
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	i.Services = string(b)
	return nil
}

// RenewalAmount sums the recurring service lines only.
func (i *Income) RenewalAmount() (decimal.Decimal, error) {
	lines, err := i.ServiceLines()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, l := range lines {
		if l.Recurring {
			total = total.Add(l.Amount)
		}
	}
	return total, nil
}
