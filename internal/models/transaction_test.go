package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestTransactionDefaultsDate() {
	account := suite.createTestAccount(models.Account{})
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID, Amount: decimal.NewFromFloat(5)})

	suite.Assert().Equal(types.DateOf(time.Now()), transaction.Date)
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"Invalid type", models.Transaction{Type: "TRANSFER", Amount: decimal.NewFromFloat(1)}, models.ErrTransactionTypeInvalid},
		{"Zero amount", models.Transaction{Type: models.TypeIncome}, models.ErrTransactionAmountNotPositive},
		{"Negative amount", models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromFloat(-3)}, models.ErrTransactionAmountNotPositive},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			tt.transaction.AccountID = account.ID
			err := models.DB.Create(&tt.transaction).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionNonExistingAccount() {
	err := models.DB.Create(&models.Transaction{Type: models.TypeIncome, Amount: decimal.NewFromFloat(1)}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionSignedAmount() {
	suite.Assert().True(models.Transaction{Type: models.TypeIncome, Amount: decimal.NewFromFloat(3)}.SignedAmount().Equal(decimal.NewFromFloat(3)))
	suite.Assert().True(models.Transaction{Type: models.TypeExpense, Amount: decimal.NewFromFloat(3)}.SignedAmount().Equal(decimal.NewFromFloat(-3)))
}

// TestTransactionInvalidatesCalculations verifies that every write
// to a transaction drops the cached calculations of the owner.
func (suite *TestSuiteStandard) TestTransactionInvalidatesCalculations() {
	account := suite.createTestAccount(models.Account{})
	config := suite.createTestSpendingConfig(models.SpendingConfig{UserID: account.UserID})

	// Calculations of other users are not touched
	other := suite.createTestSpendingConfig(models.SpendingConfig{UserID: suite.createTestAccount(models.Account{}).UserID})
	_ = suite.createTestCalculation(other)

	_ = suite.createTestCalculation(config)
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID, Amount: decimal.NewFromFloat(10)})
	suite.assertCached(config.ID, false)

	_ = suite.createTestCalculation(config)
	err := models.DB.Model(&transaction).Select("Amount").Updates(models.Transaction{Amount: decimal.NewFromFloat(20)}).Error
	suite.Require().Nil(err)
	suite.assertCached(config.ID, false)

	_ = suite.createTestCalculation(config)
	err = models.DB.Delete(&transaction).Error
	suite.Require().Nil(err)
	suite.assertCached(config.ID, false)

	suite.assertCached(other.ID, true)
}

// TestTransactionFailedUpdateKeepsCalculation verifies that the
// invalidation is rolled back with the write it belongs to.
func (suite *TestSuiteStandard) TestTransactionFailedUpdateKeepsCalculation() {
	account := suite.createTestAccount(models.Account{})
	config := suite.createTestSpendingConfig(models.SpendingConfig{UserID: account.UserID})
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID, Amount: decimal.NewFromFloat(10)})
	_ = suite.createTestCalculation(config)

	err := models.DB.Model(&transaction).Select("Amount").Updates(models.Transaction{Amount: decimal.NewFromFloat(-1)}).Error
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)
	suite.assertCached(config.ID, true)
}
