package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Frequency is the repetition interval of a recurring payment.
//
// swagger:enum Frequency
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

var (
	ErrFrequencyInvalid          = errors.New("the frequency must be DAILY, WEEKLY or MONTHLY")
	ErrRecurringStartDateMissing = errors.New("the start date of a recurring payment must be set")
	ErrRecurringEndBeforeStart   = errors.New("the end date of a recurring payment must not be before its start date")
	ErrDayOfMonthInvalid         = errors.New("the day of month must be between 1 and 31")
	ErrDayOfWeekInvalid          = errors.New("the day of week must be between 0 (Sunday) and 6 (Saturday)")
)

// RecurringPayment is an income or expense that repeats on a schedule.
type RecurringPayment struct {
	DefaultModel
	AccountID   uuid.UUID       `gorm:"type:uuid;index"`
	Account     Account         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Type        TransactionType `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Frequency   Frequency
	StartDate   types.Date
	EndDate     *types.Date
	DayOfMonth  *int
	DayOfWeek   *int
	Description string
	Paused      bool // Paused payments are ignored in calculations
}

func (r *RecurringPayment) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

// AfterSave verifies the schedule and invalidates the owner's calculations.
func (r *RecurringPayment) AfterSave(tx *gorm.DB) error {
	if err := r.validate(); err != nil {
		return err
	}

	return r.invalidate(tx)
}

func (r *RecurringPayment) AfterDelete(tx *gorm.DB) error {
	return r.invalidate(tx)
}

func (r RecurringPayment) validate() error {
	if !r.Type.IsValid() {
		return ErrTransactionTypeInvalid
	}

	if !r.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !r.Frequency.IsValid() {
		return ErrFrequencyInvalid
	}

	if r.StartDate.IsZero() {
		return ErrRecurringStartDateMissing
	}

	if r.EndDate != nil && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return ErrRecurringEndBeforeStart
	}

	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return ErrDayOfMonthInvalid
	}

	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return ErrDayOfWeekInvalid
	}

	return nil
}

func (r *RecurringPayment) invalidate(tx *gorm.DB) error {
	owner, err := accountOwner(tx, r.AccountID)
	if err != nil {
		return err
	}

	return InvalidateUserCalculations(tx, owner)
}

// AnchorDay returns the day of month a monthly payment is due on.
// It defaults to the day of the start date.
func (r RecurringPayment) AnchorDay() int {
	if r.DayOfMonth != nil {
		return *r.DayOfMonth
	}
	return r.StartDate.Day()
}
