package ledger

import (
	"errors"
	"fmt"

	"bizledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// syncIncomeReminder upserts or removes the reminder derived from an
// income. A reminder exists while the income has a renewal date and at
// least one recurring service line; its amount sums only the recurring
// lines.
func syncIncomeReminder(tx *gorm.DB, inc *models.Income) error {
	renewal, err := inc.RenewalAmount()
	if err != nil {
		return &ValidationError{Messages: []string{"invalid service line items"}}
	}

	if inc.RenewalDate == nil || renewal.IsZero() {
		return deleteIncomeReminder(tx, inc.ID)
	}

	var rem models.Reminder
	err = tx.Where("income_id = ?", inc.ID).First(&rem).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rem = models.Reminder{
			ID:       uuid.NewString(),
			UserID:   inc.UserID,
			Title:    "Service renewal: " + inc.Description,
			DueDate:  *inc.RenewalDate,
			Status:   models.ReminderPending,
			Amount:   renewal,
			IncomeID: &inc.ID,
		}
		if err := tx.Create(&rem).Error; err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("load reminder: %w", err)
	}

	rem.Title = "Service renewal: " + inc.Description
	rem.DueDate = *inc.RenewalDate
	rem.Amount = renewal
	if err := tx.Save(&rem).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func deleteIncomeReminder(tx *gorm.DB, incomeID string) error {
	if err := tx.Where("income_id = ?", incomeID).Delete(&models.Reminder{}).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// syncAdminPaymentReminder upserts or removes the reminder derived
// from an admin payment: present while the payment has a due date.
func syncAdminPaymentReminder(tx *gorm.DB, pay *models.AdminPayment) error {
	if pay.DueDate == nil {
		return deleteAdminPaymentReminder(tx, pay.ID)
	}

	var rem models.Reminder
	err := tx.Where("admin_payment_id = ?", pay.ID).First(&rem).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rem = models.Reminder{
			ID:             uuid.NewString(),
			UserID:         pay.UserID,
			Title:          pay.Name,
			DueDate:        *pay.DueDate,
			Status:         models.ReminderPending,
			Amount:         pay.Amount,
			AdminPaymentID: &pay.ID,
		}
		if err := tx.Create(&rem).Error; err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("load reminder: %w", err)
	}

	rem.Title = pay.Name
	rem.DueDate = *pay.DueDate
	rem.Amount = pay.Amount
	if err := tx.Save(&rem).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func deleteAdminPaymentReminder(tx *gorm.DB, adminPaymentID string) error {
	if err := tx.Where("admin_payment_id = ?", adminPaymentID).Delete(&models.Reminder{}).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// ListReminders returns the user's reminders, pending ones first,
// earliest due date first.
func (s *Service) ListReminders(userID string) ([]models.Reminder, error) {
	var rems []models.Reminder
	if err := s.db.Where("user_id = ?", userID).
		Order("status ASC, due_date ASC").Find(&rems).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return rems, nil
}

// ResolveReminder marks a pending reminder as resolved.
func (s *Service) ResolveReminder(userID, id string) (*models.Reminder, error) {
	var rem models.Reminder
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&rem).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reminder: %w", err)
	}

	rem.Status = models.ReminderResolved
	if err := s.db.Save(&rem).Error; err != nil {
		return nil, fmt.Errorf("save reminder: %w", err)
	}
	return &rem, nil
}

// DeleteReminder removes a reminder without touching its source entity.
func (s *Service) DeleteReminder(userID, id string) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Reminder{})
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
