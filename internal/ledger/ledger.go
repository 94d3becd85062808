package ledger

import (
	"errors"
	"fmt"
	"strings"

	"bizledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Referential errors abort an operation before any balance mutation.
var (
	ErrAccountNotFound  = errors.New("account does not exist")
	ErrEmployeeNotFound = errors.New("employee does not exist")
	ErrClientNotFound   = errors.New("client does not exist")
	ErrNotFound         = errors.New("record not found")

	// ErrPayrollExpense guards companion expense rows: they are managed
	// only through their payroll payment.
	ErrPayrollExpense = errors.New("expense belongs to a payroll payment")

	// ErrAccountInUse rejects deleting an account still referenced by
	// incomes, expenses, transactions or payroll payments.
	ErrAccountInUse = errors.New("account has linked records")
)

// ValidationError carries the messages of all failed input constraints.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Service owns every balance-mutating operation. All mutations run in
// a single database transaction: either every account update and the
// record write succeed, or none do.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// delta is a signed balance change against one account.
type delta struct {
	accountID string
	amount    decimal.Decimal
}

// lockAccount loads one of the user's accounts inside tx.
// A missing account is a referential error, not a storage error.
func lockAccount(tx *gorm.DB, userID, accountID string) (*models.Account, error) {
	var acc models.Account
	err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &acc, nil
}

// applyDeltas verifies every referenced account exists before touching
// any balance, then applies each delta in order.
func applyDeltas(tx *gorm.DB, userID string, deltas []delta) error {
	accounts := make([]*models.Account, len(deltas))
	for i, d := range deltas {
		acc, err := lockAccount(tx, userID, d.accountID)
		if err != nil {
			return err
		}
		accounts[i] = acc
	}
	for i, d := range deltas {
		acc := accounts[i]
		acc.Balance = acc.Balance.Add(d.amount)
		if err := tx.Model(&models.Account{}).
			Where("id = ?", acc.ID).
			Update("balance", acc.Balance).Error; err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		// later deltas against the same account must see this write
		for j := i + 1; j < len(deltas); j++ {
			if accounts[j].ID == acc.ID {
				accounts[j].Balance = acc.Balance
			}
		}
	}
	return nil
}

// invert returns the inverse deltas, used to reverse a stored entity's
// effect on edit and delete.
func invert(deltas []delta) []delta {
	out := make([]delta, len(deltas))
	for i, d := range deltas {
		out[i] = delta{accountID: d.accountID, amount: d.amount.Neg()}
	}
	return out
}
