package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	ez_uuid "github.com/spendwise/backend/internal/uuid"
)

type TransactionEditable struct {
	AccountID uuid.UUID              `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`                                                        // ID of the account
	Type      models.TransactionType `json:"type" example:"EXPENSE"`                                                                                          // INCOME or EXPENSE
	Amount    decimal.Decimal        `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // The amount of the transaction
	Date      types.Date             `json:"date" example:"2024-03-15"`                                                                                       // Date of the transaction. Defaults to today. Dates after today are scheduled transactions.
	Note      string                 `json:"note" example:"Groceries" default:""`                                                                             // A note
}

// model returns the database resource for the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		AccountID: editable.AccountID,
		Type:      editable.Type,
		Amount:    editable.Amount,
		Date:      editable.Date,
		Note:      editable.Note,
	}
}

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`  // The account of the transaction
}

// Transaction is the API v1 representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := baseURL(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID: model.AccountID,
			Type:      model.Type,
			Amount:    model.Amount,
			Date:      model.Date,
			Note:      model.Note,
		},
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // The transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID         ez_uuid.UUID           `form:"account"`                               // ID of the account
	Type              models.TransactionType `form:"type"`                                  // INCOME or EXPENSE
	FromDate          string                 `form:"fromDate" filterField:"false"`          // Transactions at and after this date
	UntilDate         string                 `form:"untilDate" filterField:"false"`         // Transactions before and at this date
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Note              string                 `form:"note" filterField:"false"`              // Fuzzy filter for the note
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return TransactionEditable{
		AccountID: f.AccountID.UUID,
		Type:      f.Type,
	}.model()
}
