package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSalaryPayment(t *testing.T, user uuid.UUID, c v1.SalaryPaymentEditable, expectedStatus ...int) v1.SalaryPaymentResponse {
	if c.AccountID == uuid.Nil {
		c.AccountID = createTestAccount(t, user, v1.AccountEditable{}).Data.ID
	}

	if c.ExpectedAmount.IsZero() {
		c.ExpectedAmount = decimal.NewFromInt(2400)
	}

	if c.StartDay == 0 {
		c.StartDay = 25
	}

	if c.EndDay == 0 {
		c.EndDay = 28
	}

	if c.Frequency == "" {
		c.Frequency = models.SalaryMonthly
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/salary-payments", []v1.SalaryPaymentEditable{c}, as(user))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var salary v1.SalaryPaymentCreateResponse
	test.DecodeResponse(t, &r, &salary)

	if r.Code == http.StatusCreated {
		return salary.Data[0]
	}

	return v1.SalaryPaymentResponse{}
}

func (suite *TestSuiteStandard) TestSalaryPaymentsCreate() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	s := createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{
		AccountID:   a.Data.ID,
		Description: "Salary ",
		StartDay:    1,
		EndDay:      3,
	})

	require.NotNil(suite.T(), s.Data)
	assert.Equal(suite.T(), "Salary", s.Data.Description)
	assert.Equal(suite.T(), 1, s.Data.StartDay)
	assert.Equal(suite.T(), 3, s.Data.EndDay)
	assert.Equal(suite.T(), a.Data.Links.Self, s.Data.Links.Account)
}

func (suite *TestSuiteStandard) TestSalaryPaymentsCreateInvalid() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	foreign := createTestAccount(suite.T(), uuid.New(), v1.AccountEditable{})

	base := v1.SalaryPaymentEditable{
		AccountID:      a.Data.ID,
		ExpectedAmount: decimal.NewFromInt(2400),
		StartDay:       25,
		EndDay:         28,
		Frequency:      models.SalaryMonthly,
	}

	tests := []struct {
		name   string
		modify func(*v1.SalaryPaymentEditable)
		status int
		err    string
	}{
		{"Foreign account", func(e *v1.SalaryPaymentEditable) { e.AccountID = foreign.Data.ID }, http.StatusNotFound, "there is no account matching your query"},
		{"Start after end", func(e *v1.SalaryPaymentEditable) { e.StartDay, e.EndDay = 28, 25 }, http.StatusBadRequest, models.ErrSalaryDayWindowInvalid.Error()},
		{"End day too large", func(e *v1.SalaryPaymentEditable) { e.EndDay = 32 }, http.StatusBadRequest, models.ErrSalaryDayWindowInvalid.Error()},
		{"Start day zero", func(e *v1.SalaryPaymentEditable) { e.StartDay = 0 }, http.StatusBadRequest, models.ErrSalaryDayWindowInvalid.Error()},
		{"Negative amount", func(e *v1.SalaryPaymentEditable) { e.ExpectedAmount = decimal.NewFromInt(-1) }, http.StatusBadRequest, models.ErrSalaryAmountNotPositive.Error()},
		{"Invalid frequency", func(e *v1.SalaryPaymentEditable) { e.Frequency = "WEEKLY" }, http.StatusBadRequest, models.ErrSalaryFrequencyInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			editable := base
			tt.modify(&editable)

			r := test.Request(t, http.MethodPost, "http://example.com/v1/salary-payments", []v1.SalaryPaymentEditable{editable}, as(suite.user))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SalaryPaymentCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestSalaryPaymentsGetFilter() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})

	_ = createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{AccountID: a.Data.ID, Description: "Salary"})
	_ = createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{Description: "Bonus", Frequency: models.SalaryQuarterly})
	_ = createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{Paused: true})
	_ = createTestSalaryPayment(suite.T(), uuid.New(), v1.SalaryPaymentEditable{Description: "Salary"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Account", fmt.Sprintf("account=%s", a.Data.ID), 1},
		{"Quarterly", "frequency=QUARTERLY", 1},
		{"Monthly", "frequency=MONTHLY", 2},
		{"Paused", "paused=true", 1},
		{"Fuzzy description", "description=al", 1},
		{"Empty description", "description=", 1},
		{"Limit", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.SalaryPaymentListResponse

			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/salary-payments?%s", tt.query), "", as(suite.user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.len, len(response.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestSalaryPaymentsGetInvalidQuery() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/salary-payments?account=NoUUID", "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSalaryPaymentsUpdate() {
	s := createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{})

	r := test.Request(suite.T(), http.MethodPatch, s.Data.Links.Self, map[string]any{"startDay": 20, "expectedAmount": "2500.50"}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SalaryPaymentResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 20, response.Data.StartDay)
	assert.Equal(suite.T(), 28, response.Data.EndDay)
	assert.True(suite.T(), response.Data.ExpectedAmount.Equal(decimal.NewFromFloat(2500.50)))

	r = test.Request(suite.T(), http.MethodPatch, s.Data.Links.Self, map[string]any{"endDay": 10}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), r.Body.String(), models.ErrSalaryDayWindowInvalid.Error())
}

func (suite *TestSuiteStandard) TestSalaryPaymentsDelete() {
	s := createTestSalaryPayment(suite.T(), suite.user, v1.SalaryPaymentEditable{})

	r := test.Request(suite.T(), http.MethodDelete, s.Data.Links.Self, "", as(uuid.New()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, s.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
