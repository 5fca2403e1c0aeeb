package projection

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
)

// Inputs are all values the waterfall is folded from.
type Inputs struct {
	Period          Period
	Balances        []models.AccountBalance
	CashFlow        CashFlow
	GoalsReserved   decimal.Decimal
	Goals           []GoalItem
	EmergencyBuffer decimal.Decimal
	Upcoming        []models.Transaction
	SpentToday      decimal.Decimal
}

// Fold walks from the current balance to the available amount and derives
// the daily limit from it.
//
// The steps are always recorded in the same order. Steps for flows that the
// config excludes are recorded with an amount of zero.
func Fold(in Inputs) Result {
	r := Result{
		Period:     in.Period,
		SpentToday: in.SpentToday,
		Breakdown: Breakdown{
			Accounts:             make([]AccountItem, 0, len(in.Balances)),
			Steps:                make([]Step, 0, 7),
			Salaries:             in.CashFlow.Salaries,
			RecurringIncome:      in.CashFlow.IncomeItems,
			RecurringExpenses:    in.CashFlow.ExpenseItems,
			Goals:                in.Goals,
			UpcomingTransactions: make([]UpcomingItem, 0, len(in.Upcoming)),
		},
	}

	balance := decimal.Zero
	for _, b := range in.Balances {
		balance = balance.Add(b.Balance)
		r.Breakdown.Accounts = append(r.Breakdown.Accounts, AccountItem{
			ID:      b.Account.ID,
			Name:    b.Account.Name,
			Balance: b.Balance,
		})
	}

	// Expenses increase the amount that is committed, income reduces it
	upcoming := decimal.Zero
	for _, t := range in.Upcoming {
		upcoming = upcoming.Sub(t.SignedAmount())
		r.Breakdown.UpcomingTransactions = append(r.Breakdown.UpcomingTransactions, UpcomingItem{
			ID:        t.ID,
			AccountID: t.AccountID,
			Date:      t.Date,
			Type:      string(t.Type),
			Amount:    t.Amount,
			Note:      t.Note,
		})
	}

	total := decimal.Zero
	step := func(name StepName, amount decimal.Decimal) {
		total = total.Add(amount)
		r.Breakdown.Steps = append(r.Breakdown.Steps, Step{Name: name, Amount: amount, Total: total})
	}

	step(StepCurrentBalance, balance)
	step(StepExpectedSalary, in.CashFlow.Salary)
	step(StepRecurringIncome, in.CashFlow.RecurringIncome)
	step(StepRecurringExpenses, in.CashFlow.RecurringExpenses.Neg())
	step(StepGoalsReserved, in.GoalsReserved.Neg())
	step(StepEmergencyBuffer, in.EmergencyBuffer.Neg())
	step(StepUpcomingTransactions, upcoming.Neg())

	r.CurrentBalance = balance
	r.ExpectedSalary = in.CashFlow.Salary
	r.ExpectedRecurringIncome = in.CashFlow.RecurringIncome
	r.ExpectedRecurringExpenses = in.CashFlow.RecurringExpenses
	r.GoalsReserved = in.GoalsReserved
	r.EmergencyBuffer = in.EmergencyBuffer
	r.UpcomingTransactions = upcoming
	r.AvailableAmount = total
	r.AvailableForGoals = decimal.Max(decimal.Zero, total)

	r.DailyLimit = decimal.Zero
	if in.Period.DaysRemaining > 0 {
		r.DailyLimit = total.Div(decimal.NewFromInt(int64(in.Period.DaysRemaining)))
	}

	r.RemainingToday = decimal.Max(decimal.Zero, r.DailyLimit.Sub(in.SpentToday))

	return r
}
