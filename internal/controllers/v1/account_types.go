package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

type AccountEditable struct {
	Name           string          `json:"name" example:"Checking" default:""`                                                                  // Name of the account
	Note           string          `json:"note" example:"Salary goes here" default:""`                                                          // A longer description for the account
	InitialBalance decimal.Decimal `json:"initialBalance" example:"173.12" default:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Balance of the account before any transactions were recorded
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		Note:           editable.Note,
		InitialBalance: editable.InitialBalance,
	}
}

type AccountLinks struct {
	Self              string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                                // The account itself
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`            // Transactions on the account
	RecurringPayments string `json:"recurringPayments" example:"https://example.com/api/v1/recurring-payments?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Recurring payments on the account
	SalaryPayments    string `json:"salaryPayments" example:"https://example.com/api/v1/salary-payments?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`       // Salaries paid to the account
}

// Account is the API v1 representation of an Account.
type Account struct {
	models.DefaultModel
	AccountEditable
	Balance decimal.Decimal `json:"balance" example:"1024.5"` // Balance at the end of today
	Links   AccountLinks    `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) (Account, error) {
	url := baseURL(c)

	balance, err := model.Balance(models.DB, types.DateOf(time.Now()))
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			Note:           model.Note,
			InitialBalance: model.InitialBalance,
		},
		Balance: balance,
		Links: AccountLinks{
			Self:              fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions:      fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
			RecurringPayments: fmt.Sprintf("%s/v1/recurring-payments?account=%s", url, model.ID),
			SalaryPayments:    fmt.Sprintf("%s/v1/salary-payments?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created Accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
}

type AccountQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Fuzzy filter for the account name
	Note   string `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}
