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

// ExpenseInput carries the writable fields of an expense.
type ExpenseInput struct {
	AccountID   string          `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func (in *ExpenseInput) validate() error {
	var msgs []string
	if in.AccountID == "" {
		msgs = append(msgs, "payment account is required")
	}
	if !in.Amount.IsPositive() {
		msgs = append(msgs, "amount must be positive")
	}
	if in.Date.IsZero() {
		msgs = append(msgs, "date is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// expenseDeltas is the balance effect of an expense: a single debit
// against its payment account.
func expenseDeltas(e *models.Expense) []delta {
	return []delta{{accountID: e.AccountID, amount: e.Amount.Neg()}}
}

// CreateExpense debits the payment account and writes the record in
// one transaction.
func (s *Service) CreateExpense(userID string, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exp := models.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   in.AccountID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyDeltas(tx, userID, expenseDeltas(&exp)); err != nil {
			return err
		}
		if err := tx.Create(&exp).Error; err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// UpdateExpense reverses the stored version's debit, then applies the
// new one. When the payment account changed, both accounts move.
func (s *Service) UpdateExpense(userID, id string, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var exp models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load expense: %w", err)
		}
		if exp.PayrollPaymentID != nil {
			return ErrPayrollExpense
		}

		// both the old and the new account must exist before any
		// balance moves
		if _, err := lockAccount(tx, userID, in.AccountID); err != nil {
			return err
		}

		if err := applyDeltas(tx, userID, invert(expenseDeltas(&exp))); err != nil {
			return err
		}

		exp.AccountID = in.AccountID
		exp.Amount = in.Amount
		exp.Category = in.Category
		exp.Description = in.Description
		exp.Date = in.Date

		if err := applyDeltas(tx, userID, expenseDeltas(&exp)); err != nil {
			return err
		}
		if err := tx.Save(&exp).Error; err != nil {
			return fmt.Errorf("save expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// DeleteExpense reverses the stored debit and removes the record.
func (s *Service) DeleteExpense(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var exp models.Expense
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load expense: %w", err)
		}
		if exp.PayrollPaymentID != nil {
			return ErrPayrollExpense
		}

		if err := applyDeltas(tx, userID, invert(expenseDeltas(&exp))); err != nil {
			return err
		}
		if err := tx.Delete(&exp).Error; err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
}

// GetExpense returns one of the user's expenses.
func (s *Service) GetExpense(userID, id string) (*models.Expense, error) {
	var exp models.Expense
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load expense: %w", err)
	}
	return &exp, nil
}

// ListExpenses returns the user's expenses, newest first.
func (s *Service) ListExpenses(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
