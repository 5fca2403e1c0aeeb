package projection

import (
	"fmt"
	"time"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// DefaultSalaryPeriodDays is the length of a TO_NEXT_SALARY period when the
// config does not have a salary date.
const DefaultSalaryPeriodDays = 14

// Period is the range a calculation projects over.
type Period struct {
	Start         types.Date `json:"start" example:"2024-03-15"` // The day of the calculation
	End           types.Date `json:"end" example:"2024-03-31"`   // Last day of the period
	DaysRemaining int        `json:"daysRemaining" example:"16"` // Whole days from start until the end, never negative
}

// ResolvePeriod determines the end of the period for a config at now.
func ResolvePeriod(config models.SpendingConfig, now time.Time) (Period, error) {
	today := types.DateOf(now)

	var end types.Date
	switch config.PeriodType {
	case models.PeriodToEndOfMonth:
		end = today.EndOfMonth()

	case models.PeriodCustomDays:
		if config.CustomDays == nil {
			return Period{}, fmt.Errorf("%w: the period type CUSTOM_DAYS requires customDays to be set", models.ErrConfigInvalid)
		}
		end = today.AddDays(*config.CustomDays)

	case models.PeriodToDate:
		if config.EndDate == nil || config.EndDate.IsZero() {
			return Period{}, fmt.Errorf("%w: the period type TO_DATE requires endDate to be set", models.ErrConfigInvalid)
		}
		end = *config.EndDate

	case models.PeriodToNextSalary:
		if config.SalaryDate != nil && !config.SalaryDate.IsZero() {
			end = *config.SalaryDate
		} else {
			end = today.AddDays(DefaultSalaryPeriodDays)
		}

	default:
		return Period{}, fmt.Errorf("%w: unknown period type %q", models.ErrConfigInvalid, config.PeriodType)
	}

	return Period{
		Start:         today,
		End:           end,
		DaysRemaining: max(0, today.DaysUntil(end)),
	}, nil
}
