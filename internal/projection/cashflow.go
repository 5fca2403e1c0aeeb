package projection

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/exp/slices"
)

// CashFlow is the expected income and expenses within a period.
type CashFlow struct {
	Salary            decimal.Decimal
	RecurringIncome   decimal.Decimal
	RecurringExpenses decimal.Decimal

	Salaries     []CashFlowItem
	IncomeItems  []CashFlowItem
	ExpenseItems []CashFlowItem
}

// AggregateCashFlow sums up the salaries and recurring payments the config
// includes for the period.
func AggregateCashFlow(config models.SpendingConfig, payments []models.RecurringPayment, salaries []models.SalaryPayment, period Period) CashFlow {
	cf := CashFlow{
		Salary:            decimal.Zero,
		RecurringIncome:   decimal.Zero,
		RecurringExpenses: decimal.Zero,
		Salaries:          []CashFlowItem{},
		IncomeItems:       []CashFlowItem{},
		ExpenseItems:      []CashFlowItem{},
	}

	if config.IncludeSalary {
		for _, s := range salaries {
			item, ok := salaryItem(s, period)
			if !ok {
				continue
			}

			cf.Salary = cf.Salary.Add(item.Amount)
			cf.Salaries = append(cf.Salaries, item)
		}
	}

	for _, p := range payments {
		if p.Paused {
			continue
		}

		if p.Type == models.TypeIncome && !config.IncludeRecurringIncome {
			continue
		}

		if p.Type == models.TypeExpense && !config.IncludeRecurringExpenses {
			continue
		}

		occurrences := CountOccurrences(p, period.Start, period.End)
		if occurrences == 0 {
			continue
		}

		item := CashFlowItem{
			ID:          p.ID,
			AccountID:   p.AccountID,
			Description: p.Description,
			Frequency:   string(p.Frequency),
			Date:        firstDue(p, types.Max(period.Start, p.StartDate)),
			UnitAmount:  p.Amount,
			Occurrences: occurrences,
			Amount:      p.Amount.Mul(decimal.NewFromInt(int64(occurrences))),
		}

		if p.Type == models.TypeIncome {
			cf.RecurringIncome = cf.RecurringIncome.Add(item.Amount)
			cf.IncomeItems = append(cf.IncomeItems, item)
		} else {
			cf.RecurringExpenses = cf.RecurringExpenses.Add(item.Amount)
			cf.ExpenseItems = append(cf.ExpenseItems, item)
		}
	}

	sortItems(cf.Salaries)
	sortItems(cf.IncomeItems)
	sortItems(cf.ExpenseItems)

	return cf
}

// salaryItem checks if the salary is paid within the period. The salary
// is expected on its start day in the current month.
func salaryItem(s models.SalaryPayment, period Period) (CashFlowItem, bool) {
	today := period.Start
	if s.Paused || !s.Frequency.PaidIn(today.Month()) {
		return CashFlowItem{}, false
	}

	date := types.NewDate(today.Year(), today.Month(), min(s.StartDay, today.DaysInMonth()))
	if date.Before(today) || date.After(period.End) {
		return CashFlowItem{}, false
	}

	return CashFlowItem{
		ID:          s.ID,
		AccountID:   s.AccountID,
		Description: s.Description,
		Frequency:   string(s.Frequency),
		Date:        date,
		UnitAmount:  s.ExpectedAmount,
		Occurrences: 1,
		Amount:      s.ExpectedAmount,
	}, true
}

// firstDue returns the first day on or after from that the payment is due.
func firstDue(p models.RecurringPayment, from types.Date) types.Date {
	if p.Frequency != models.FrequencyMonthly {
		return from
	}

	anchor := p.AnchorDay()
	due := types.NewDate(from.Year(), from.Month(), min(anchor, from.DaysInMonth()))
	if due.Before(from) {
		next := types.NewDate(from.Year(), from.Month()+1, 1)
		due = types.NewDate(next.Year(), next.Month(), min(anchor, next.DaysInMonth()))
	}

	return due
}

func sortItems(items []CashFlowItem) {
	slices.SortStableFunc(items, func(a, b CashFlowItem) int {
		if c := a.Date.Time().Compare(b.Date.Time()); c != 0 {
			return c
		}
		return strings.Compare(a.Description, b.Description)
	})
}
