package ledger

import (
	"errors"
	"fmt"
	"time"

	"bizledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeInput carries the writable fields of an income.
type IncomeInput struct {
	AccountID             string               `json:"accountId"`
	ClientID              string               `json:"clientId"`
	AmountPaid            decimal.Decimal      `json:"amountPaid"`
	TotalContractedAmount decimal.Decimal      `json:"totalContractedAmount"`
	Services              []models.ServiceLine `json:"services"`
	RenewalDate           *time.Time           `json:"renewalDate"`
	Date                  time.Time            `json:"date"`
	Description           string               `json:"description"`
}

func (in *IncomeInput) validate() error {
	var msgs []string
	if in.AccountID == "" {
		msgs = append(msgs, "payment account is required")
	}
	if in.AmountPaid.IsNegative() {
		msgs = append(msgs, "amount paid must not be negative")
	}
	if in.TotalContractedAmount.LessThan(in.AmountPaid) {
		msgs = append(msgs, "total contracted amount must cover the amount paid")
	}
	if in.Date.IsZero() {
		msgs = append(msgs, "date is required")
	}
	for _, l := range in.Services {
		if l.Amount.IsNegative() {
			msgs = append(msgs, "service amounts must not be negative")
			break
		}
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// incomeDeltas is the balance effect of an income: the net amount
// (after commission) credited to its payment account.
func incomeDeltas(inc *models.Income) []delta {
	return []delta{{accountID: inc.AccountID, amount: inc.AmountWithCommission}}
}

// fillAmounts computes the commission split using the CURRENT rate of
// the referenced account:
//
//	commissionAmount     = amountPaid × account.commission
//	amountWithCommission = amountPaid − commissionAmount
//	remainingBalance     = totalContractedAmount − amountPaid
func fillAmounts(inc *models.Income, acc *models.Account, in IncomeInput) {
	inc.AmountPaid = in.AmountPaid
	inc.CommissionAmount = in.AmountPaid.Mul(acc.Commission)
	inc.AmountWithCommission = in.AmountPaid.Sub(inc.CommissionAmount)
	inc.TotalContractedAmount = in.TotalContractedAmount
	inc.RemainingBalance = in.TotalContractedAmount.Sub(in.AmountPaid)
}

func (s *Service) checkClient(tx *gorm.DB, userID, clientID string) error {
	if clientID == "" {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Client{}).Where("id = ? AND user_id = ?", clientID, userID).Count(&count).Error; err != nil {
		return fmt.Errorf("check client: %w", err)
	}
	if count == 0 {
		return ErrClientNotFound
	}
	return nil
}

// CreateIncome credits the payment account with the net amount, writes
// the record and derives its reminder in one transaction.
func (s *Service) CreateIncome(userID string, in IncomeInput) (*models.Income, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	inc := models.Income{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   in.AccountID,
		ClientID:    in.ClientID,
		RenewalDate: in.RenewalDate,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := inc.SetServiceLines(in.Services); err != nil {
		return nil, &ValidationError{Messages: []string{"invalid service line items"}}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkClient(tx, userID, in.ClientID); err != nil {
			return err
		}
		acc, err := lockAccount(tx, userID, in.AccountID)
		if err != nil {
			return err
		}
		fillAmounts(&inc, acc, in)

		if err := applyDeltas(tx, userID, incomeDeltas(&inc)); err != nil {
			return err
		}
		if err := tx.Create(&inc).Error; err != nil {
			return fmt.Errorf("create income: %w", err)
		}
		return syncIncomeReminder(tx, &inc)
	})
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

// UpdateIncome reverses the stored credit, then recomputes the
// commission split against the (possibly different) account's current
// rate and applies the new credit.
func (s *Service) UpdateIncome(userID, id string, in IncomeInput) (*models.Income, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var inc models.Income
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&inc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load income: %w", err)
		}
		if err := s.checkClient(tx, userID, in.ClientID); err != nil {
			return err
		}
		acc, err := lockAccount(tx, userID, in.AccountID)
		if err != nil {
			return err
		}

		if err := applyDeltas(tx, userID, invert(incomeDeltas(&inc))); err != nil {
			return err
		}

		inc.AccountID = in.AccountID
		inc.ClientID = in.ClientID
		inc.RenewalDate = in.RenewalDate
		inc.Date = in.Date
		inc.Description = in.Description
		if err := inc.SetServiceLines(in.Services); err != nil {
			return &ValidationError{Messages: []string{"invalid service line items"}}
		}
		fillAmounts(&inc, acc, in)

		if err := applyDeltas(tx, userID, incomeDeltas(&inc)); err != nil {
			return err
		}
		if err := tx.Save(&inc).Error; err != nil {
			return fmt.Errorf("save income: %w", err)
		}
		return syncIncomeReminder(tx, &inc)
	})
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

// DeleteIncome reverses the stored credit and removes the record along
// with its derived reminder.
func (s *Service) DeleteIncome(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inc models.Income
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&inc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load income: %w", err)
		}

		if err := applyDeltas(tx, userID, invert(incomeDeltas(&inc))); err != nil {
			return err
		}
		if err := deleteIncomeReminder(tx, inc.ID); err != nil {
			return err
		}
		if err := tx.Delete(&inc).Error; err != nil {
			return fmt.Errorf("delete income: %w", err)
		}
		return nil
	})
}

// GetIncome returns one of the user's incomes.
func (s *Service) GetIncome(userID, id string) (*models.Income, error) {
	var inc models.Income
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&inc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load income: %w", err)
	}
	return &inc, nil
}

// ListIncomes returns the user's incomes, newest first.
func (s *Service) ListIncomes(userID string) ([]models.Income, error) {
	var incomes []models.Income
	if err := s.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC").Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return incomes, nil
}
