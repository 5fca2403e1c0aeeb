package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// PeriodType selects how the end of the period a spending config
// calculates against is determined.
//
// swagger:enum PeriodType
type PeriodType string

const (
	PeriodToNextSalary PeriodType = "TO_NEXT_SALARY"
	PeriodToEndOfMonth PeriodType = "TO_END_OF_MONTH"
	PeriodCustomDays   PeriodType = "CUSTOM_DAYS"
	PeriodToDate       PeriodType = "TO_DATE"
)

func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodToNextSalary, PeriodToEndOfMonth, PeriodCustomDays, PeriodToDate:
		return true
	}
	return false
}

var ErrSpendingConfigNameNotUnique = errors.New("the spending config name must be unique")

// SpendingConfig defines how the daily spending limit of a user is calculated.
type SpendingConfig struct {
	DefaultModel
	UserID                   uuid.UUID `gorm:"type:uuid;uniqueIndex:spending_config_name_user"`
	Name                     string    `gorm:"uniqueIndex:spending_config_name_user"`
	PeriodType               PeriodType
	CustomDays               *int        // Length of the period for CUSTOM_DAYS
	EndDate                  *types.Date // End of the period for TO_DATE
	SalaryDate               *types.Date // Next salary date for TO_NEXT_SALARY
	IncludeSalary            bool
	IncludeRecurringIncome   bool
	IncludeRecurringExpenses bool
	EmergencyBuffer          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsActive                 bool            `gorm:"index"`
}

// ConfigGoal links a goal to a spending config.
type ConfigGoal struct {
	Timestamps
	SpendingConfigID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SpendingConfig   SpendingConfig `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	GoalID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Goal             Goal           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Priority         int            // Higher priorities are listed first
}

func (c *SpendingConfig) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// AfterSave validates the config. Since any change can change the result,
// the cached calculation is dropped.
func (c *SpendingConfig) AfterSave(tx *gorm.DB) error {
	if err := c.validate(); err != nil {
		return err
	}

	return InvalidateCalculation(tx, c.ID)
}

func (c *SpendingConfig) AfterDelete(tx *gorm.DB) error {
	return InvalidateCalculation(tx, c.ID)
}

func (c SpendingConfig) validate() error {
	if !c.PeriodType.IsValid() {
		return fmt.Errorf("%w: the period type must be one of TO_NEXT_SALARY, TO_END_OF_MONTH, CUSTOM_DAYS or TO_DATE", ErrConfigInvalid)
	}

	if c.PeriodType == PeriodCustomDays && (c.CustomDays == nil || *c.CustomDays <= 0) {
		return fmt.Errorf("%w: the period type CUSTOM_DAYS requires customDays to be a positive number", ErrConfigInvalid)
	}

	if c.PeriodType == PeriodToDate && (c.EndDate == nil || c.EndDate.IsZero()) {
		return fmt.Errorf("%w: the period type TO_DATE requires endDate to be set", ErrConfigInvalid)
	}

	if c.EmergencyBuffer.IsNegative() {
		return fmt.Errorf("%w: the emergency buffer must not be negative", ErrConfigInvalid)
	}

	return nil
}

// Activate makes the config the active config of its user. All other
// configs of the user are deactivated in the same database transaction.
func (c *SpendingConfig) Activate(db *gorm.DB) error {
	err := InTransaction(db, func(tx *gorm.DB) error {
		// The config itself is not modified by the batch updates, so
		// validation hooks are skipped.
		tx = tx.Session(&gorm.Session{SkipHooks: true})

		err := tx.Model(&SpendingConfig{}).
			Where("user_id = ? AND id <> ?", c.UserID, c.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		result := tx.Model(&SpendingConfig{}).
			Where("user_id = ? AND id = ?", c.UserID, c.ID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w spending config matching your query", ErrResourceNotFound)
		}

		return nil
	})
	if err != nil {
		return err
	}

	c.IsActive = true
	return nil
}

// Goals returns the goal links of the config with the goals loaded,
// ordered by descending priority.
func (c SpendingConfig) Goals(db *gorm.DB) ([]ConfigGoal, error) {
	var links []ConfigGoal
	err := db.
		Preload("Goal").
		Where(&ConfigGoal{SpendingConfigID: c.ID}).
		Order("priority DESC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	return links, nil
}

// SetGoals replaces the goal links of the config. All goals must belong
// to the owner of the config.
func (c SpendingConfig) SetGoals(db *gorm.DB, links []ConfigGoal) error {
	return InTransaction(db, func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			ids = append(ids, link.GoalID)
		}

		if len(ids) > 0 {
			var owned int64
			err := tx.Model(&Goal{}).Where("id IN ? AND user_id = ?", ids, c.UserID).Count(&owned).Error
			if err != nil {
				return err
			}

			if int(owned) != len(uniqueIDs(ids)) {
				return fmt.Errorf("%w goal for one of the goal IDs you referenced", ErrResourceNotFound)
			}
		}

		err := tx.Where(&ConfigGoal{SpendingConfigID: c.ID}).Delete(&ConfigGoal{}).Error
		if err != nil {
			return err
		}

		seen := make(map[uuid.UUID]bool, len(links))
		for _, link := range links {
			if seen[link.GoalID] {
				continue
			}
			seen[link.GoalID] = true

			err := tx.Create(&ConfigGoal{
				SpendingConfigID: c.ID,
				GoalID:           link.GoalID,
				Priority:         link.Priority,
			}).Error
			if err != nil {
				return err
			}
		}

		return InvalidateCalculation(tx, c.ID)
	})
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
