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

// AdminPaymentInput carries the writable fields of a recurring
// administrative payment.
type AdminPaymentInput struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"dueDate"`
	Description string          `json:"description"`
}

func (in *AdminPaymentInput) validate() error {
	var msgs []string
	if in.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if in.Amount.IsNegative() {
		msgs = append(msgs, "amount must not be negative")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// CreateAdminPayment writes the descriptor and derives its reminder.
// Admin payments never touch account balances.
func (s *Service) CreateAdminPayment(userID string, in AdminPaymentInput) (*models.AdminPayment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	pay := models.AdminPayment{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        in.Name,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Description: in.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pay).Error; err != nil {
			return fmt.Errorf("create admin payment: %w", err)
		}
		return syncAdminPaymentReminder(tx, &pay)
	})
	if err != nil {
		return nil, err
	}
	return &pay, nil
}

// UpdateAdminPayment rewrites the descriptor and upserts or removes
// its reminder depending on whether a due date remains.
func (s *Service) UpdateAdminPayment(userID, id string, in AdminPaymentInput) (*models.AdminPayment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var pay models.AdminPayment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load admin payment: %w", err)
		}

		pay.Name = in.Name
		pay.Amount = in.Amount
		pay.DueDate = in.DueDate
		pay.Description = in.Description

		if err := tx.Save(&pay).Error; err != nil {
			return fmt.Errorf("save admin payment: %w", err)
		}
		return syncAdminPaymentReminder(tx, &pay)
	})
	if err != nil {
		return nil, err
	}
	return &pay, nil
}

// DeleteAdminPayment removes the descriptor and its derived reminder.
func (s *Service) DeleteAdminPayment(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var pay models.AdminPayment
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load admin payment: %w", err)
		}

		if err := deleteAdminPaymentReminder(tx, pay.ID); err != nil {
			return err
		}
		if err := tx.Delete(&pay).Error; err != nil {
			return fmt.Errorf("delete admin payment: %w", err)
		}
		return nil
	})
}

// GetAdminPayment returns one of the user's admin payments.
func (s *Service) GetAdminPayment(userID, id string) (*models.AdminPayment, error) {
	var pay models.AdminPayment
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&pay).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load admin payment: %w", err)
	}
	return &pay, nil
}

// ListAdminPayments returns the user's admin payments ordered by name.
func (s *Service) ListAdminPayments(userID string) ([]models.AdminPayment, error) {
	var pays []models.AdminPayment
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&pays).Error; err != nil {
		return nil, fmt.Errorf("list admin payments: %w", err)
	}
	return pays, nil
}
