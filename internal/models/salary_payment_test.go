package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
)

func (suite *TestSuiteStandard) TestSalaryPaymentValidation() {
	account := suite.createTestAccount(models.Account{})

	tests := []struct {
		name    string
		payment models.SalaryPayment
		err     error
	}{
		{"Zero amount", models.SalaryPayment{StartDay: 1, EndDay: 5, Frequency: models.SalaryMonthly}, models.ErrSalaryAmountNotPositive},
		{"Start day zero", models.SalaryPayment{ExpectedAmount: decimal.NewFromFloat(3000), EndDay: 5, Frequency: models.SalaryMonthly}, models.ErrSalaryDayWindowInvalid},
		{"End day too large", models.SalaryPayment{ExpectedAmount: decimal.NewFromFloat(3000), StartDay: 25, EndDay: 32, Frequency: models.SalaryMonthly}, models.ErrSalaryDayWindowInvalid},
		{"Start after end", models.SalaryPayment{ExpectedAmount: decimal.NewFromFloat(3000), StartDay: 10, EndDay: 5, Frequency: models.SalaryMonthly}, models.ErrSalaryDayWindowInvalid},
		{"Invalid frequency", models.SalaryPayment{ExpectedAmount: decimal.NewFromFloat(3000), StartDay: 1, EndDay: 5, Frequency: "WEEKLY"}, models.ErrSalaryFrequencyInvalid},
		{"Valid", models.SalaryPayment{ExpectedAmount: decimal.NewFromFloat(3000), StartDay: 25, EndDay: 31, Frequency: models.SalaryQuarterly}, nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			tt.payment.AccountID = account.ID
			err := models.DB.Create(&tt.payment).Error
			if tt.err == nil {
				suite.Assert().Nil(err)
				return
			}
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestSalaryFrequencyPaidIn() {
	for m := time.January; m <= time.December; m++ {
		suite.Assert().True(models.SalaryMonthly.PaidIn(m), "monthly salary not paid in %s", m)
	}

	paid := []time.Month{}
	for m := time.January; m <= time.December; m++ {
		if models.SalaryQuarterly.PaidIn(m) {
			paid = append(paid, m)
		}
	}
	suite.Assert().Equal([]time.Month{time.March, time.June, time.September, time.December}, paid)
}

func (suite *TestSuiteStandard) TestSalaryPaymentInvalidatesCalculations() {
	account := suite.createTestAccount(models.Account{})
	config := suite.createTestSpendingConfig(models.SpendingConfig{UserID: account.UserID})

	_ = suite.createTestCalculation(config)
	payment := suite.createTestSalaryPayment(models.SalaryPayment{AccountID: account.ID, ExpectedAmount: decimal.NewFromFloat(2500), StartDay: 25, EndDay: 28})
	suite.assertCached(config.ID, false)

	_ = suite.createTestCalculation(config)
	err := models.DB.Delete(&payment).Error
	suite.Require().Nil(err)
	suite.assertCached(config.ID, false)
}
