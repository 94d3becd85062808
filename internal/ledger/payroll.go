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

// PayrollPaymentInput carries the writable fields of a payroll payment.
type PayrollPaymentInput struct {
	EmployeeID  string          `json:"employeeId"`
	AccountID   string          `json:"accountId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func (in *PayrollPaymentInput) validate() error {
	var msgs []string
	if in.EmployeeID == "" {
		msgs = append(msgs, "employee is required")
	}
	if in.AccountID == "" {
		msgs = append(msgs, "payment account is required")
	}
	if !in.TotalAmount.IsPositive() {
		msgs = append(msgs, "total amount must be positive")
	}
	if in.Month < 1 || in.Month > 12 {
		msgs = append(msgs, "month must be between 1 and 12")
	}
	if in.Year < 2000 || in.Year > 2200 {
		msgs = append(msgs, "year is out of range")
	}
	if in.Date.IsZero() {
		msgs = append(msgs, "date is required")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// payrollDeltas is the balance effect of a payroll payment: a single
// debit of the total amount. The companion expense row is bookkeeping
// only and never applies a delta of its own.
func payrollDeltas(p *models.PayrollPayment) []delta {
	return []delta{{accountID: p.AccountID, amount: p.TotalAmount.Neg()}}
}

func (s *Service) checkEmployee(tx *gorm.DB, userID, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	err := tx.Where("id = ? AND user_id = ?", employeeID, userID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	return &emp, nil
}

func companionExpense(p *models.PayrollPayment, employeeName string) models.Expense {
	return models.Expense{
		ID:               uuid.NewString(),
		UserID:           p.UserID,
		AccountID:        p.AccountID,
		Amount:           p.TotalAmount,
		Category:         "payroll",
		Description:      fmt.Sprintf("Payroll %02d/%d - %s", p.Month, p.Year, employeeName),
		Date:             p.Date,
		PayrollPaymentID: &p.ID,
	}
}

// CreatePayrollPayment debits the payment account by the total amount
// and inserts the payment together with its companion expense row.
func (s *Service) CreatePayrollPayment(userID string, in PayrollPaymentInput) (*models.PayrollPayment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	pay := models.PayrollPayment{
		ID:          uuid.NewString(),
		UserID:      userID,
		EmployeeID:  in.EmployeeID,
		AccountID:   in.AccountID,
		TotalAmount: in.TotalAmount,
		Month:       in.Month,
		Year:        in.Year,
		Date:        in.Date,
		Description: in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		emp, err := s.checkEmployee(tx, userID, in.EmployeeID)
		if err != nil {
			return err
		}
		if err := applyDeltas(tx, userID, payrollDeltas(&pay)); err != nil {
			return err
		}
		if err := tx.Create(&pay).Error; err != nil {
			return fmt.Errorf("create payroll payment: %w", err)
		}
		exp := companionExpense(&pay, emp.Name)
		if err := tx.Create(&exp).Error; err != nil {
			return fmt.Errorf("create companion expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pay, nil
}

// UpdatePayrollPayment reverses the stored debit, applies the new one
// and rewrites the companion expense to match.
func (s *Service) UpdatePayrollPayment(userID, id string, in PayrollPaymentInput) (*models.PayrollPayment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var pay models.PayrollPayment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load payroll payment: %w", err)
		}
		emp, err := s.checkEmployee(tx, userID, in.EmployeeID)
		if err != nil {
			return err
		}
		if _, err := lockAccount(tx, userID, in.AccountID); err != nil {
			return err
		}

		if err := applyDeltas(tx, userID, invert(payrollDeltas(&pay))); err != nil {
			return err
		}

		pay.EmployeeID = in.EmployeeID
		pay.AccountID = in.AccountID
		pay.TotalAmount = in.TotalAmount
		pay.Month = in.Month
		pay.Year = in.Year
		pay.Date = in.Date
		pay.Description = in.Description

		if err := applyDeltas(tx, userID, payrollDeltas(&pay)); err != nil {
			return err
		}
		if err := tx.Save(&pay).Error; err != nil {
			return fmt.Errorf("save payroll payment: %w", err)
		}

		// rewrite the companion row rather than patching it field by field
		if err := tx.Where("payroll_payment_id = ? AND user_id = ?", pay.ID, userID).
			Delete(&models.Expense{}).Error; err != nil {
			return fmt.Errorf("delete companion expense: %w", err)
		}
		exp := companionExpense(&pay, emp.Name)
		if err := tx.Create(&exp).Error; err != nil {
			return fmt.Errorf("create companion expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pay, nil
}

// DeletePayrollPayment reverses the stored debit and removes the
// payment together with its companion expense.
func (s *Service) DeletePayrollPayment(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var pay models.PayrollPayment
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load payroll payment: %w", err)
		}

		if err := applyDeltas(tx, userID, invert(payrollDeltas(&pay))); err != nil {
			return err
		}
		if err := tx.Where("payroll_payment_id = ? AND user_id = ?", pay.ID, userID).
			Delete(&models.Expense{}).Error; err != nil {
			return fmt.Errorf("delete companion expense: %w", err)
		}
		if err := tx.Delete(&pay).Error; err != nil {
			return fmt.Errorf("delete payroll payment: %w", err)
		}
		return nil
	})
}

// GetPayrollPayment returns one of the user's payroll payments.
func (s *Service) GetPayrollPayment(userID, id string) (*models.PayrollPayment, error) {
	var pay models.PayrollPayment
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load payroll payment: %w", err)
	}
	return &pay, nil
}

// ListPayrollPayments returns the user's payroll payments, newest first.
func (s *Service) ListPayrollPayments(userID string) ([]models.PayrollPayment, error) {
	var pays []models.PayrollPayment
	if err := s.db.Where("user_id = ?", userID).
		Order("year DESC, month DESC, date DESC").Find(&pays).Error; err != nil {
		return nil, fmt.Errorf("list payroll payments: %w", err)
	}
	return pays, nil
}
