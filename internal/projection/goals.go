package projection

import (
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"golang.org/x/exp/slices"
)

// ReserveGoals calculates how much needs to be set aside within the period
// to stay on track for the goals.
//
// Each goal needs (target amount + minimum balance) / days to target per
// day. Only the days of the period are reserved, so goals further out than
// the end of the period are not reserved in full. Achieved goals and goals
// with a target date that is not in the future are skipped.
func ReserveGoals(links []models.ConfigGoal, today types.Date, daysRemaining int) (decimal.Decimal, []GoalItem) {
	reserved := decimal.Zero
	items := []GoalItem{}

	for _, link := range links {
		g := link.Goal
		if g.Achieved || !g.TargetDate.After(today) {
			continue
		}

		daysToTarget := today.DaysUntil(g.TargetDate)
		need := g.TargetAmount.Add(g.MinBalance)
		days := decimal.NewFromInt(int64(daysToTarget))

		// Multiplying first keeps the result exact when the goal is
		// reserved for all days until its target date
		amount := need.Mul(decimal.NewFromInt(int64(min(daysRemaining, daysToTarget)))).Div(days)

		items = append(items, GoalItem{
			ID:           g.ID,
			Name:         g.Name,
			Priority:     link.Priority,
			TargetAmount: g.TargetAmount,
			MinBalance:   g.MinBalance,
			TargetDate:   g.TargetDate,
			DaysToTarget: daysToTarget,
			DailyAmount:  need.Div(days),
			Reserved:     amount,
		})
		reserved = reserved.Add(amount)
	}

	slices.SortStableFunc(items, func(a, b GoalItem) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}
		return a.TargetDate.Time().Compare(b.TargetDate.Time())
	})

	return reserved, items
}
