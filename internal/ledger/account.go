package ledger

import (
	"errors"
	"fmt"

	"bizledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountInput carries the writable fields of an account.
type AccountInput struct {
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	Commission decimal.Decimal `json:"commission"`
}

func (in *AccountInput) validate() error {
	var msgs []string
	if in.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if in.Commission.IsNegative() || in.Commission.GreaterThan(decimal.NewFromInt(1)) {
		msgs = append(msgs, "commission must be a fraction between 0 and 1")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// CreateAccount opens a new account with an initial balance.
func (s *Service) CreateAccount(userID string, in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	acc := models.Account{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       in.Name,
		Balance:    in.Balance,
		Commission: in.Commission,
	}
	if err := s.db.Create(&acc).Error; err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &acc, nil
}

// UpdateAccount changes name and commission rate. The balance is not
// writable here: it only moves through the mutating entities.
func (s *Service) UpdateAccount(userID, id string, in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var acc models.Account
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	acc.Name = in.Name
	acc.Commission = in.Commission
	if err := s.db.Save(&acc).Error; err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}
	return &acc, nil
}

// DeleteAccount removes an account that no record references.
func (s *Service) DeleteAccount(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockAccount(tx, userID, id); err != nil {
			return err
		}

		var count int64
		for _, m := range []interface{}{&models.Income{}, &models.Expense{}, &models.PayrollPayment{}} {
			if err := tx.Model(m).Where("user_id = ? AND account_id = ?", userID, id).Count(&count).Error; err != nil {
				return fmt.Errorf("count references: %w", err)
			}
			if count > 0 {
				return ErrAccountInUse
			}
		}
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND (account_id = ? OR destination_account_id = ?)", userID, id, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count references: %w", err)
		}
		if count > 0 {
			return ErrAccountInUse
		}

		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Account{}).Error; err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
}

// GetAccount returns one of the user's accounts.
func (s *Service) GetAccount(userID, id string) (*models.Account, error) {
	var acc models.Account
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &acc, nil
}

// ListAccounts returns all of the user's accounts ordered by name.
func (s *Service) ListAccounts(userID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
