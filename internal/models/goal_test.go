package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestGoalTrimWhitespace() {
	goal := suite.createTestGoal(models.Goal{UserID: uuid.New(), Name: " Holidays\t", Note: " Norway "})

	suite.Assert().Equal("Holidays", goal.Name)
	suite.Assert().Equal("Norway", goal.Note)
}

func (suite *TestSuiteStandard) TestGoalValidation() {
	userID := uuid.New()
	target := types.NewDate(2099, 1, 1)

	tests := []struct {
		name string
		goal models.Goal
		err  error
	}{
		{"Zero amount", models.Goal{TargetDate: target}, models.ErrGoalAmountNotPositive},
		{"Negative min balance", models.Goal{TargetAmount: decimal.NewFromFloat(5), MinBalance: decimal.NewFromFloat(-1), TargetDate: target}, models.ErrGoalMinBalanceNegative},
		{"Missing target date", models.Goal{TargetAmount: decimal.NewFromFloat(5)}, models.ErrGoalTargetDateMissing},
		{"Parent does not exist", models.Goal{TargetAmount: decimal.NewFromFloat(5), TargetDate: target, ParentID: ptr(uuid.New())}, models.ErrResourceNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			tt.goal.UserID = userID
			err := models.DB.Create(&tt.goal).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalParentOtherUser() {
	parent := suite.createTestGoal(models.Goal{UserID: uuid.New()})

	err := models.DB.Create(&models.Goal{
		UserID:       uuid.New(),
		ParentID:     &parent.ID,
		TargetAmount: decimal.NewFromFloat(10),
		TargetDate:   types.NewDate(2099, 1, 1),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrGoalParentOtherUser)
}

func (suite *TestSuiteStandard) TestGoalParentCycle() {
	userID := uuid.New()
	root := suite.createTestGoal(models.Goal{UserID: userID})
	child := suite.createTestGoal(models.Goal{UserID: userID, ParentID: &root.ID})
	grandchild := suite.createTestGoal(models.Goal{UserID: userID, ParentID: &child.ID})

	// Moving the root below its grandchild would create a cycle
	err := models.DB.Model(&root).Select("ParentID").Updates(models.Goal{ParentID: &grandchild.ID}).Error
	suite.Assert().ErrorIs(err, models.ErrGoalParentCycle)

	// A goal cannot be its own parent
	err = models.DB.Model(&child).Select("ParentID").Updates(models.Goal{ParentID: &child.ID}).Error
	suite.Assert().ErrorIs(err, models.ErrGoalParentCycle)
}

func (suite *TestSuiteStandard) TestGoalDeleteWithChildren() {
	userID := uuid.New()
	parent := suite.createTestGoal(models.Goal{UserID: userID})
	child := suite.createTestGoal(models.Goal{UserID: userID, ParentID: &parent.ID})

	err := models.DB.Delete(&parent).Error
	suite.Assert().ErrorIs(err, models.ErrGoalHasChildren)

	// Children first, then the parent works
	suite.Require().Nil(models.DB.Delete(&child).Error)
	suite.Assert().Nil(models.DB.Delete(&parent).Error)
}

func (suite *TestSuiteStandard) TestGoalInvalidatesCalculations() {
	userID := uuid.New()
	config := suite.createTestSpendingConfig(models.SpendingConfig{UserID: userID})

	_ = suite.createTestCalculation(config)
	goal := suite.createTestGoal(models.Goal{UserID: userID})
	suite.assertCached(config.ID, false)

	_ = suite.createTestCalculation(config)
	err := models.DB.Model(&goal).Select("Achieved").Updates(models.Goal{Achieved: true}).Error
	suite.Require().Nil(err)
	suite.assertCached(config.ID, false)

	_ = suite.createTestCalculation(config)
	suite.Require().Nil(models.DB.Delete(&goal).Error)
	suite.assertCached(config.ID, false)
}
