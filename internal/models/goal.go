package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Goal is a savings goal. Goals can be nested below a parent goal.
type Goal struct {
	DefaultModel
	UserID       uuid.UUID  `gorm:"type:uuid;index"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	Name         string
	Note         string
	TargetAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The amount to save
	MinBalance   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Balance to keep on top of the target
	TargetDate   types.Date
	Achieved     bool
}

var (
	ErrGoalAmountNotPositive  = errors.New("goal amounts must be larger than zero")
	ErrGoalMinBalanceNegative = errors.New("the minimum balance of a goal must not be negative")
	ErrGoalTargetDateMissing  = errors.New("the target date of a goal must be set")
	ErrGoalParentCycle        = errors.New("a goal cannot be its own ancestor")
	ErrGoalParentOtherUser    = errors.New("the parent goal must belong to the same user")
)

// maxGoalDepth limits how far up the goal tree the cycle check walks.
const maxGoalDepth = 64

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

// AfterSave verifies the goal and its position in the goal tree.
func (g *Goal) AfterSave(tx *gorm.DB) error {
	if !g.TargetAmount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if g.MinBalance.IsNegative() {
		return ErrGoalMinBalanceNegative
	}

	if g.TargetDate.IsZero() {
		return ErrGoalTargetDateMissing
	}

	if g.ParentID != nil && *g.ParentID != uuid.Nil {
		if err := g.checkParent(tx); err != nil {
			return err
		}
	}

	return InvalidateUserCalculations(tx, g.UserID)
}

// checkParent walks up the tree from the parent and fails when it
// reaches the goal itself.
func (g *Goal) checkParent(tx *gorm.DB) error {
	next := *g.ParentID
	for range maxGoalDepth {
		if next == g.ID {
			return ErrGoalParentCycle
		}

		var parent Goal
		err := tx.Select("id", "user_id", "parent_id").First(&parent, "id = ?", next).Error
		if err != nil {
			return err
		}

		if parent.UserID != g.UserID {
			return ErrGoalParentOtherUser
		}

		if parent.ParentID == nil || *parent.ParentID == uuid.Nil {
			return nil
		}
		next = *parent.ParentID
	}

	return ErrGoalParentCycle
}

// BeforeDelete refuses to delete goals that still have sub-goals.
func (g *Goal) BeforeDelete(tx *gorm.DB) error {
	var children int64
	err := tx.Model(&Goal{}).Where("parent_id = ?", g.ID).Count(&children).Error
	if err != nil {
		return err
	}

	if children > 0 {
		return ErrGoalHasChildren
	}

	return nil
}

func (g *Goal) AfterDelete(tx *gorm.DB) error {
	return InvalidateUserCalculations(tx, g.UserID)
}
