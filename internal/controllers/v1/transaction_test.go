package v1_test

import (
	"fmt"
	"net/http"
	"testing"
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

func createTestTransaction(t *testing.T, user uuid.UUID, c v1.TransactionEditable, expectedStatus ...int) v1.TransactionResponse {
	if c.AccountID == uuid.Nil {
		c.AccountID = createTestAccount(t, user, v1.AccountEditable{}).Data.ID
	}

	if c.Type == "" {
		c.Type = models.TypeExpense
	}

	if c.Amount.IsZero() {
		c.Amount = decimal.NewFromFloat(13.37)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{c}, as(user))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var transaction v1.TransactionCreateResponse
	test.DecodeResponse(t, &r, &transaction)

	if r.Code == http.StatusCreated {
		return transaction.Data[0]
	}

	return v1.TransactionResponse{}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})

	transaction := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{
		AccountID: a.Data.ID,
		Type:      models.TypeIncome,
		Amount:    decimal.NewFromFloat(2400),
		Note:      " Salary ",
	})

	require.NotNil(suite.T(), transaction.Data)
	assert.Equal(suite.T(), "Salary", transaction.Data.Note)
	assert.Equal(suite.T(), types.DateOf(time.Now()), transaction.Data.Date, "The date must default to today")
	assert.Equal(suite.T(), a.Data.Links.Self, transaction.Data.Links.Account)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalid() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	foreign := createTestAccount(suite.T(), uuid.New(), v1.AccountEditable{})

	tests := []struct {
		name     string
		editable v1.TransactionEditable
		status   int
		err      string
	}{
		{"Account of other user", v1.TransactionEditable{AccountID: foreign.Data.ID}, http.StatusNotFound, "there is no account matching your query"},
		{"Account does not exist", v1.TransactionEditable{AccountID: uuid.New()}, http.StatusNotFound, "there is no account matching your query"},
		{"Invalid type", v1.TransactionEditable{AccountID: a.Data.ID, Type: "TRANSFER"}, http.StatusBadRequest, models.ErrTransactionTypeInvalid.Error()},
		{"Negative amount", v1.TransactionEditable{AccountID: a.Data.ID, Type: models.TypeExpense, Amount: decimal.NewFromInt(-5)}, http.StatusBadRequest, models.ErrTransactionAmountNotPositive.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{tt.editable}, as(suite.user))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	a1 := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	a2 := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})

	_ = createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{
		AccountID: a1.Data.ID,
		Type:      models.TypeIncome,
		Amount:    decimal.NewFromInt(2400),
		Date:      types.NewDate(2024, 2, 28),
		Note:      "Salary",
	})

	_ = createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{
		AccountID: a1.Data.ID,
		Amount:    decimal.NewFromInt(700),
		Date:      types.NewDate(2024, 3, 1),
		Note:      "Rent",
	})

	_ = createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{
		AccountID: a2.Data.ID,
		Amount:    decimal.NewFromFloat(12.5),
		Date:      types.NewDate(2024, 3, 15),
		Note:      "Groceries",
	})

	_ = createTestTransaction(suite.T(), uuid.New(), v1.TransactionEditable{Date: types.NewDate(2024, 3, 1)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Account 1", fmt.Sprintf("account=%s", a1.Data.ID), 2},
		{"Account 2", fmt.Sprintf("account=%s", a2.Data.ID), 1},
		{"Income", "type=INCOME", 1},
		{"Expense", "type=EXPENSE", 2},
		{"From date", "fromDate=2024-03-01", 2},
		{"Until date", "untilDate=2024-03-01", 2},
		{"Date range", "fromDate=2024-03-01&untilDate=2024-03-01", 1},
		{"Amount less or equal", "amountLessOrEqual=700", 2},
		{"Amount more or equal", "amountMoreOrEqual=700", 2},
		{"Fuzzy note", "note=e", 2},
		{"Note", "note=Rent", 1},
		{"Limit 1", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.TransactionListResponse

			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "", as(suite.user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetOrder() {
	a := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	_ = createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{AccountID: a.Data.ID, Date: types.NewDate(2024, 3, 1)})
	latest := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{AccountID: a.Data.ID, Date: types.NewDate(2024, 3, 15)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), latest.Data.ID, response.Data[0].ID, "Transactions must be ordered latest first")
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidQuery() {
	tests := []string{
		"fromDate=yesterday",
		"untilDate=2024-13-01",
		"account=NotAUUID",
		"amountLessOrEqual=lots",
		"limit=many",
	}

	for _, query := range tests {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", query), "", as(suite.user))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{Note: "Groceries"})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{
		"amount": 42,
		"date":   "2024-03-01",
	}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(42)))
	assert.Equal(suite.T(), types.NewDate(2024, 3, 1), response.Data.Date)
	assert.Equal(suite.T(), "Groceries", response.Data.Note)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateAccount() {
	transaction := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{})
	own := createTestAccount(suite.T(), suite.user, v1.AccountEditable{})
	foreign := createTestAccount(suite.T(), uuid.New(), v1.AccountEditable{})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"accountId": foreign.Data.ID}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"accountId": own.Data.ID}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), own.Data.ID, response.Data.AccountID)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateInvalid() {
	transaction := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"amount": -1}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	transaction := createTestTransaction(suite.T(), suite.user, v1.TransactionEditable{})

	// Other users cannot delete the transaction
	r := test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "", as(uuid.New()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, transaction.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
