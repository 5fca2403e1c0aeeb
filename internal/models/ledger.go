package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// AccountBalance is the balance of a single account.
type AccountBalance struct {
	Account Account
	Balance decimal.Decimal
}

// Ledger reads everything a calculation needs for a user. All reads are
// scoped to the accounts and goals of that user.
type Ledger struct {
	DB *gorm.DB
}

// Balances returns the balance of every account of the user at the end of asOf.
func (l Ledger) Balances(userID uuid.UUID, asOf types.Date) ([]AccountBalance, error) {
	var accounts []Account
	err := l.DB.Scopes(OwnedBy(userID)).Order("name ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	balances := make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		balance, err := a.Balance(l.DB, asOf)
		if err != nil {
			return nil, err
		}

		balances = append(balances, AccountBalance{Account: a, Balance: balance})
	}

	return balances, nil
}

// SpentOn returns the sum of all expenses of the user on the given day.
func (l Ledger) SpentOn(userID uuid.UUID, day types.Date) (decimal.Decimal, error) {
	var transactions []Transaction
	err := l.DB.
		Scopes(OnAccountsOf(userID)).
		Where(&Transaction{Type: TypeExpense}).
		Where("date(transactions.date) = date(?)", day).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	spent := decimal.Zero
	for _, t := range transactions {
		spent = spent.Add(t.Amount)
	}

	return spent, nil
}

// UpcomingTransactions returns the transactions of the user dated strictly
// after from and strictly before until, ordered by date.
func (l Ledger) UpcomingTransactions(userID uuid.UUID, from, until types.Date) ([]Transaction, error) {
	var transactions []Transaction
	err := l.DB.
		Scopes(OnAccountsOf(userID)).
		Where("date(transactions.date) > date(?) AND date(transactions.date) < date(?)", from, until).
		Order("date ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// RecurringPayments returns all recurring payments of the user that are
// not paused.
func (l Ledger) RecurringPayments(userID uuid.UUID) ([]RecurringPayment, error) {
	var payments []RecurringPayment
	err := l.DB.
		Scopes(OnAccountsOf(userID)).
		Where("paused = ?", false).
		Order("start_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// SalaryPayments returns all salary payments of the user that are not paused.
func (l Ledger) SalaryPayments(userID uuid.UUID) ([]SalaryPayment, error) {
	var payments []SalaryPayment
	err := l.DB.
		Scopes(OnAccountsOf(userID)).
		Where("paused = ?", false).
		Order("start_day ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// ConfigGoals returns the goals linked to the config.
func (l Ledger) ConfigGoals(config SpendingConfig) ([]ConfigGoal, error) {
	return config.Goals(l.DB)
}

// SpendingConfig returns the config with the given ID. If id is nil, the
// active config of the user is returned.
func (l Ledger) SpendingConfig(userID uuid.UUID, id *uuid.UUID) (SpendingConfig, error) {
	var config SpendingConfig

	if id == nil {
		err := l.DB.Scopes(OwnedBy(userID)).Where("is_active = ?", true).First(&config).Error
		if errors.Is(err, ErrResourceNotFound) {
			return SpendingConfig{}, ErrNoActiveConfig
		}
		return config, err
	}

	err := l.DB.Scopes(OwnedBy(userID)).First(&config, "id = ?", *id).Error
	return config, err
}
