package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// Ledger provides the data of a user a calculation reads.
//
// models.Ledger implements it on top of the database.
type Ledger interface {
	Balances(userID uuid.UUID, asOf types.Date) ([]models.AccountBalance, error)
	SpentOn(userID uuid.UUID, day types.Date) (decimal.Decimal, error)
	UpcomingTransactions(userID uuid.UUID, from, until types.Date) ([]models.Transaction, error)
	RecurringPayments(userID uuid.UUID) ([]models.RecurringPayment, error)
	SalaryPayments(userID uuid.UUID) ([]models.SalaryPayment, error)
	ConfigGoals(config models.SpendingConfig) ([]models.ConfigGoal, error)
}

// Compute calculates the daily spending limit for a config at now.
//
// Either all inputs can be read and a complete result is returned, or an
// error is returned.
func Compute(ledger Ledger, config models.SpendingConfig, now time.Time) (Result, error) {
	period, err := ResolvePeriod(config, now)
	if err != nil {
		return Result{}, err
	}

	log.Debug().
		Str("config", config.ID.String()).
		Str("period-end", period.End.String()).
		Int("days-remaining", period.DaysRemaining).
		Msg("Calculation")

	userID := config.UserID
	today := period.Start

	balances, err := ledger.Balances(userID, today)
	if err != nil {
		return Result{}, err
	}

	var payments []models.RecurringPayment
	if config.IncludeRecurringIncome || config.IncludeRecurringExpenses {
		payments, err = ledger.RecurringPayments(userID)
		if err != nil {
			return Result{}, err
		}
	}

	var salaries []models.SalaryPayment
	if config.IncludeSalary {
		salaries, err = ledger.SalaryPayments(userID)
		if err != nil {
			return Result{}, err
		}
	}

	links, err := ledger.ConfigGoals(config)
	if err != nil {
		return Result{}, err
	}

	upcoming, err := ledger.UpcomingTransactions(userID, today.AddDays(1), period.End)
	if err != nil {
		return Result{}, err
	}

	spent, err := ledger.SpentOn(userID, today)
	if err != nil {
		return Result{}, err
	}

	reserved, goals := ReserveGoals(links, today, period.DaysRemaining)

	result := Fold(Inputs{
		Period:          period,
		Balances:        balances,
		CashFlow:        AggregateCashFlow(config, payments, salaries, period),
		GoalsReserved:   reserved,
		Goals:           goals,
		EmergencyBuffer: config.EmergencyBuffer,
		Upcoming:        upcoming,
		SpentToday:      spent,
	})
	result.SpendingConfigID = config.ID

	return result, nil
}
