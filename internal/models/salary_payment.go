package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryFrequency is the repetition interval of a salary.
//
// swagger:enum SalaryFrequency
type SalaryFrequency string

const (
	SalaryMonthly   SalaryFrequency = "MONTHLY"
	SalaryQuarterly SalaryFrequency = "QUARTERLY"
)

func (f SalaryFrequency) IsValid() bool {
	return f == SalaryMonthly || f == SalaryQuarterly
}

// PaidIn reports whether the salary is expected in the given month.
// Quarterly salaries are paid in the last month of each quarter.
func (f SalaryFrequency) PaidIn(m time.Month) bool {
	if f == SalaryQuarterly {
		return m%3 == 0
	}
	return true
}

var (
	ErrSalaryFrequencyInvalid  = errors.New("the salary frequency must be MONTHLY or QUARTERLY")
	ErrSalaryAmountNotPositive = errors.New("the expected salary amount must be positive")
	ErrSalaryDayWindowInvalid  = errors.New("the salary start and end day must be between 1 and 31, with the start day not after the end day")
)

// SalaryPayment is a salary expected within a window of days of a month.
type SalaryPayment struct {
	DefaultModel
	AccountID      uuid.UUID       `gorm:"type:uuid;index"`
	Account        Account         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ExpectedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description    string
	StartDay       int
	EndDay         int
	Frequency      SalaryFrequency
	Paused         bool // Paused salaries are ignored in calculations
}

func (s *SalaryPayment) BeforeSave(_ *gorm.DB) error {
	s.Description = strings.TrimSpace(s.Description)
	return nil
}

func (s *SalaryPayment) AfterSave(tx *gorm.DB) error {
	if !s.ExpectedAmount.IsPositive() {
		return ErrSalaryAmountNotPositive
	}

	if s.StartDay < 1 || s.EndDay > 31 || s.StartDay > s.EndDay {
		return ErrSalaryDayWindowInvalid
	}

	if !s.Frequency.IsValid() {
		return ErrSalaryFrequencyInvalid
	}

	return s.invalidate(tx)
}

func (s *SalaryPayment) AfterDelete(tx *gorm.DB) error {
	return s.invalidate(tx)
}

func (s *SalaryPayment) invalidate(tx *gorm.DB) error {
	owner, err := accountOwner(tx, s.AccountID)
	if err != nil {
		return err
	}

	return InvalidateUserCalculations(tx, owner)
}
