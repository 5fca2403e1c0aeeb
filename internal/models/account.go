package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Account represents an asset account of a user, e.g. a bank account.
type Account struct {
	DefaultModel
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex:account_name_user"`
	Name           string    `gorm:"uniqueIndex:account_name_user"`
	Note           string
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var ErrAccountNameNotUnique = errors.New("the account name must be unique")

// BeforeSave trims whitespace from all strings
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

// AfterSave invalidates the calculations of the owner since the
// initial balance is part of the current balance.
func (a *Account) AfterSave(tx *gorm.DB) error {
	return InvalidateUserCalculations(tx, a.UserID)
}

func (a *Account) AfterDelete(tx *gorm.DB) error {
	return InvalidateUserCalculations(tx, a.UserID)
}

// Balance returns the balance of the account at the end of the given day.
//
// Transactions after that day are not part of the balance, they are
// scheduled transactions.
func (a Account) Balance(db *gorm.DB, asOf types.Date) (decimal.Decimal, error) {
	var transactions []Transaction
	err := db.
		Where(&Transaction{AccountID: a.ID}).
		Where("date(transactions.date) <= date(?)", asOf).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := a.InitialBalance
	for _, t := range transactions {
		balance = balance.Add(t.SignedAmount())
	}

	return balance, nil
}

// accountOwner returns the ID of the user owning the account.
func accountOwner(tx *gorm.DB, accountID uuid.UUID) (uuid.UUID, error) {
	var a Account
	err := tx.Select("id", "user_id").First(&a, "id = ?", accountID).Error
	if err != nil {
		return uuid.Nil, err
	}

	return a.UserID, nil
}
