package projection

import (
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// CountOccurrences returns how often a recurring payment is due between
// from and until.
//
// The window is narrowed to the lifetime of the payment. Daily payments
// count every whole day in the window, weekly ones every full seven days.
// Monthly payments count once if the window is inside a single month and
// contains the anchor day. Windows spanning several months count every
// calendar month they touch.
func CountOccurrences(payment models.RecurringPayment, from, until types.Date) int {
	if payment.EndDate != nil && !payment.EndDate.IsZero() {
		if payment.EndDate.Before(from) {
			return 0
		}
		until = types.Min(until, *payment.EndDate)
	}

	start := types.Max(from, payment.StartDate)
	if !start.Before(until) {
		return 0
	}

	days := start.DaysUntil(until)

	switch payment.Frequency {
	case models.FrequencyDaily:
		return days

	case models.FrequencyWeekly:
		return days / 7

	case models.FrequencyMonthly:
		if start.SameMonth(until) {
			anchor := payment.AnchorDay()
			if anchor >= start.Day() && anchor <= until.Day() {
				return 1
			}
			return 0
		}
		return until.MonthIndex() - start.MonthIndex() + 1
	}

	return 0
}
