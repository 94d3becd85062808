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

// TransactionInput carries the writable fields of a withdrawal or
// account transfer.
type TransactionInput struct {
	Type                 string          `json:"type"`
	AccountID            string          `json:"accountId"`
	DestinationAccountID string          `json:"destinationAccountId"`
	Amount               decimal.Decimal `json:"amount"`
	Date                 time.Time       `json:"date"`
	Description          string          `json:"description"`
}

func (in *TransactionInput) validate() error {
	var msgs []string
	switch in.Type {
	case models.TransactionWithdrawal:
		if in.DestinationAccountID != "" {
			msgs = append(msgs, "withdrawal must not have a destination account")
		}
	case models.TransactionTransfer:
		if in.DestinationAccountID == "" {
			msgs = append(msgs, "transfer requires a destination account")
		}
		if in.DestinationAccountID != "" && in.DestinationAccountID == in.AccountID {
			msgs = append(msgs, "source and destination accounts must differ")
		}
	default:
		msgs = append(msgs, "type must be withdrawal or accountTransfer")
	}
	if in.AccountID == "" {
		msgs = append(msgs, "account is required")
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

// transactionDeltas is the balance effect of a transaction. A
// withdrawal debits one account; a transfer moves the amount between
// source and destination, leaving their combined balance unchanged.
func transactionDeltas(t *models.Transaction) []delta {
	deltas := []delta{{accountID: t.AccountID, amount: t.Amount.Neg()}}
	if t.Type == models.TransactionTransfer && t.DestinationAccountID != nil {
		deltas = append(deltas, delta{accountID: *t.DestinationAccountID, amount: t.Amount})
	}
	return deltas
}

// CreateTransaction applies the withdrawal or transfer deltas and
// writes the record in one transaction.
func (s *Service) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	trx := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        in.Type,
		AccountID:   in.AccountID,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}
	if in.Type == models.TransactionTransfer {
		dest := in.DestinationAccountID
		trx.DestinationAccountID = &dest
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := applyDeltas(tx, userID, transactionDeltas(&trx)); err != nil {
			return err
		}
		if err := tx.Create(&trx).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// UpdateTransaction reverses the stored version's effect before
// applying the new one, so changing type, amount or either account
// leaves no residue on the previously touched balances.
func (s *Service) UpdateTransaction(userID, id string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var trx models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load transaction: %w", err)
		}

		if _, err := lockAccount(tx, userID, in.AccountID); err != nil {
			return err
		}
		if in.Type == models.TransactionTransfer {
			if _, err := lockAccount(tx, userID, in.DestinationAccountID); err != nil {
				return err
			}
		}

		if err := applyDeltas(tx, userID, invert(transactionDeltas(&trx))); err != nil {
			return err
		}

		trx.Type = in.Type
		trx.AccountID = in.AccountID
		trx.Amount = in.Amount
		trx.Date = in.Date
		trx.Description = in.Description
		trx.DestinationAccountID = nil
		if in.Type == models.TransactionTransfer {
			dest := in.DestinationAccountID
			trx.DestinationAccountID = &dest
		}

		if err := applyDeltas(tx, userID, transactionDeltas(&trx)); err != nil {
			return err
		}
		if err := tx.Save(&trx).Error; err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// DeleteTransaction reverses the stored effect and removes the record.
func (s *Service) DeleteTransaction(userID, id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&trx).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load transaction: %w", err)
		}

		if err := applyDeltas(tx, userID, invert(transactionDeltas(&trx))); err != nil {
			return err
		}
		if err := tx.Delete(&trx).Error; err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return nil
	})
}

// GetTransaction returns one of the user's transactions.
func (s *Service) GetTransaction(userID, id string) (*models.Transaction, error) {
	var trx models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&trx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	return &trx, nil
}

// ListTransactions returns the user's transactions, newest first.
func (s *Service) ListTransactions(userID string) ([]models.Transaction, error) {
	var trxs []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC").Find(&trxs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return trxs, nil
}
