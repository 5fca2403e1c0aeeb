package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// TransactionType is the direction of money for transactions
// and recurring payments.
//
// swagger:enum TransactionType
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be positive")
)

// Transaction is a single movement of money on an account.
//
// Transactions dated after today are scheduled one-off transactions.
type Transaction struct {
	DefaultModel
	AccountID uuid.UUID       `gorm:"type:uuid;index"`
	Account   Account         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Type      TransactionType `gorm:"index"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date      types.Date      `gorm:"index"`
	Note      string
}

// BeforeSave
//   - defaults the date to today
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = types.DateOf(time.Now())
	}

	return nil
}

// AfterSave validates the transaction and invalidates the calculations
// of the account owner, as both the balance and the amount spent today
// may have changed.
func (t *Transaction) AfterSave(tx *gorm.DB) error {
	if !t.Type.IsValid() {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	return t.invalidate(tx)
}

func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	return t.invalidate(tx)
}

func (t *Transaction) invalidate(tx *gorm.DB) error {
	owner, err := accountOwner(tx, t.AccountID)
	if err != nil {
		return err
	}

	return InvalidateUserCalculations(tx, owner)
}

// SignedAmount returns the amount as it affects the account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
