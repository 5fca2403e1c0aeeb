package models_test

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestDatabaseNotFoundMessage() {
	err := models.DB.First(&models.SpendingConfig{}, "id = ?", uuid.New()).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no spending config matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	err := models.DB.Create(&models.Account{UserID: uuid.New(), Name: "Closed"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestInTransactionError() {
	errTest := errors.New("rolled back")
	user := uuid.New()

	err := models.InTransaction(models.DB, func(tx *gorm.DB) error {
		err := tx.Create(&models.Account{UserID: user, Name: "Rolled back"}).Error
		suite.Require().Nil(err)
		return errTest
	})
	suite.Assert().ErrorIs(err, errTest)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Account{}).Where("user_id = ?", user).Count(&count).Error)
	suite.Assert().Equal(int64(0), count, "The transaction was not rolled back")
}

func (suite *TestSuiteStandard) TestInTransactionDatabaseClosed() {
	suite.CloseDB()

	called := false
	err := models.InTransaction(models.DB, func(_ *gorm.DB) error {
		called = true
		return nil
	})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
	suite.Assert().False(called)
}
