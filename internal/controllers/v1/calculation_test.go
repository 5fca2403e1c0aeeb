package v1_test

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calculationURL = "http://example.com/v1/calculation"

func (suite *TestSuiteStandard) getCalculation(target string, headers ...map[string]string) v1.Calculation {
	r := test.Request(suite.T(), http.MethodGet, target, "", append([]map[string]string{as(suite.user)}, headers...)...)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CalculationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestCalculationNoActiveConfig() {
	_ = createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{})

	r := test.Request(suite.T(), http.MethodGet, calculationURL, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.CalculationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrNoActiveConfig.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestCalculationOptions() {
	r := test.Request(suite.T(), http.MethodOptions, calculationURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCalculationActiveConfig() {
	account := createTestAccount(suite.T(), suite.user, v1.AccountEditable{InitialBalance: decimal.NewFromInt(1000)})
	config := createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{IsActive: true})

	r := test.Request(suite.T(), http.MethodGet, calculationURL, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	assert.True(suite.T(), strings.HasPrefix(r.Header().Get("Cache-Control"), "private, max-age="), r.Header().Get("Cache-Control"))

	var response v1.CalculationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	calculation := response.Data

	today := types.DateOf(time.Now())
	assert.Equal(suite.T(), config.Data.ID, calculation.SpendingConfigID)
	assert.Equal(suite.T(), config.Data.Links.Self, calculation.Links.SpendingConfig)
	assert.Equal(suite.T(), config.Data.Links.Calculation, calculation.Links.Self)
	assert.Equal(suite.T(), today, calculation.Period.Start)
	assert.Equal(suite.T(), today.AddDays(10), calculation.Period.End)
	assert.Equal(suite.T(), 10, calculation.Period.DaysRemaining)
	assert.True(suite.T(), calculation.CurrentBalance.Equal(decimal.NewFromInt(1000)), calculation.CurrentBalance.String())
	assert.True(suite.T(), calculation.DailyLimit.Equal(decimal.NewFromInt(100)), calculation.DailyLimit.String())
	assert.True(suite.T(), calculation.RemainingToday.Equal(decimal.NewFromInt(100)), calculation.RemainingToday.String())
	assert.True(suite.T(), strings.HasPrefix(calculation.Summary, "You can spend 100.00 per day"), calculation.Summary)

	// Spending invalidates the cached calculation
	_ = createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{
		AccountID: account.Data.ID,
		Amount:    decimal.NewFromInt(30),
	})

	after := suite.getCalculation(calculationURL)
	assert.True(suite.T(), after.CurrentBalance.Equal(decimal.NewFromInt(970)), after.CurrentBalance.String())
	assert.True(suite.T(), after.DailyLimit.Equal(decimal.NewFromInt(97)), after.DailyLimit.String())
	assert.True(suite.T(), after.SpentToday.Equal(decimal.NewFromInt(30)), after.SpentToday.String())
	assert.True(suite.T(), after.RemainingToday.Equal(decimal.NewFromInt(67)), after.RemainingToday.String())
}

func (suite *TestSuiteStandard) TestCalculationCached() {
	_ = createTestAccount(suite.T(), suite.user, v1.AccountEditable{InitialBalance: decimal.NewFromInt(500)})
	_ = createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{IsActive: true})

	first := suite.getCalculation(calculationURL)
	second := suite.getCalculation(calculationURL)

	assert.True(suite.T(), first.CalculatedAt.Equal(second.CalculatedAt), "The second request must be served from the cache")

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Calculation{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TestSuiteStandard) TestCalculationSummaryLanguage() {
	_ = createTestAccount(suite.T(), suite.user, v1.AccountEditable{InitialBalance: decimal.NewFromInt(1000)})
	_ = createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{IsActive: true})

	german := suite.getCalculation(calculationURL, map[string]string{"Accept-Language": "de-DE,de;q=0.9,en;q=0.8"})
	assert.True(suite.T(), strings.HasPrefix(german.Summary, "Du kannst"), german.Summary)

	fallback := suite.getCalculation(calculationURL, map[string]string{"Accept-Language": "fr-FR"})
	assert.True(suite.T(), strings.HasPrefix(fallback.Summary, "You can spend"), fallback.Summary)
}

func (suite *TestSuiteStandard) TestCalculationForConfig() {
	_ = createTestAccount(suite.T(), suite.user, v1.AccountEditable{InitialBalance: decimal.NewFromInt(600)})
	_ = createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{IsActive: true})
	inactive := createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{CustomDays: intPtr(20), PeriodType: models.PeriodCustomDays})

	calculation := suite.getCalculation(inactive.Data.Links.Calculation)
	assert.Equal(suite.T(), inactive.Data.ID, calculation.SpendingConfigID)
	assert.Equal(suite.T(), 20, calculation.Period.DaysRemaining)
	assert.True(suite.T(), calculation.DailyLimit.Equal(decimal.NewFromInt(30)), calculation.DailyLimit.String())

	// Calculating does not change which config is active
	assert.False(suite.T(), getTestSpendingConfig(suite.T(), suite.user, inactive.Data.Links.Self).IsActive)
}

func (suite *TestSuiteStandard) TestCalculationForConfigOfOtherUser() {
	other := uuid.New()
	config := createTestSpendingConfig(suite.T(), other, v1.SpendingConfigEditable{IsActive: true})

	r := test.Request(suite.T(), http.MethodGet, config.Data.Links.Calculation, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/spending-configs/NotAUUID/calculation", "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCalculationInvalidatedByConfigChange() {
	_ = createTestAccount(suite.T(), suite.user, v1.AccountEditable{InitialBalance: decimal.NewFromInt(1000)})
	config := createTestSpendingConfig(suite.T(), suite.user, v1.SpendingConfigEditable{IsActive: true})

	before := suite.getCalculation(calculationURL)
	assert.True(suite.T(), before.DailyLimit.Equal(decimal.NewFromInt(100)), before.DailyLimit.String())

	r := test.Request(suite.T(), http.MethodPatch, config.Data.Links.Self, map[string]any{"emergencyBuffer": 200}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	after := suite.getCalculation(calculationURL)
	assert.True(suite.T(), after.EmergencyBuffer.Equal(decimal.NewFromInt(200)), after.EmergencyBuffer.String())
	assert.True(suite.T(), after.DailyLimit.Equal(decimal.NewFromInt(80)), after.DailyLimit.String())
}

func (suite *TestSuiteStandard) TestCalculationDatabaseClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, calculationURL, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.CalculationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}
