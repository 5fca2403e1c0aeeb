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

type RecurringPaymentEditable struct {
	AccountID   uuid.UUID              `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`                                                      // ID of the account
	Type        models.TransactionType `json:"type" example:"EXPENSE"`                                                                                        // INCOME or EXPENSE
	Amount      decimal.Decimal        `json:"amount" example:"700" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Amount of each payment
	Frequency   models.Frequency       `json:"frequency" example:"MONTHLY"`                                                                                   // DAILY, WEEKLY or MONTHLY
	StartDate   types.Date             `json:"startDate" example:"2024-01-01"`                                                                                // First day the payment is due
	EndDate     *types.Date            `json:"endDate" example:"2025-12-31"`                                                                                  // Last day the payment is due, if any
	DayOfMonth  *int                   `json:"dayOfMonth" example:"28" minimum:"1" maximum:"31"`                                                              // Day of month monthly payments are due on. Defaults to the day of the start date.
	DayOfWeek   *int                   `json:"dayOfWeek" example:"1" minimum:"0" maximum:"6"`                                                                 // Day of week weekly payments are due on, 0 is Sunday
	Description string                 `json:"description" example:"Rent" default:""`                                                                         // Description of the payment
	Paused      bool                   `json:"paused" example:"false" default:"false"`                                                                        // Paused payments are ignored in calculations
}

// model returns the database resource for the editable fields
func (editable RecurringPaymentEditable) model() models.RecurringPayment {
	return models.RecurringPayment{
		AccountID:   editable.AccountID,
		Type:        editable.Type,
		Amount:      editable.Amount,
		Frequency:   editable.Frequency,
		StartDate:   editable.StartDate,
		EndDate:     editable.EndDate,
		DayOfMonth:  editable.DayOfMonth,
		DayOfWeek:   editable.DayOfWeek,
		Description: editable.Description,
		Paused:      editable.Paused,
	}
}

type RecurringPaymentLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/recurring-payments/5fe0bd6e-7ca8-4dc5-9a3c-0c2c1a7d5d8f"` // The recurring payment itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`        // The account of the recurring payment
}

// RecurringPayment is the API v1 representation of a RecurringPayment.
type RecurringPayment struct {
	models.DefaultModel
	RecurringPaymentEditable
	Links RecurringPaymentLinks `json:"links"`
}

func newRecurringPayment(c *gin.Context, model models.RecurringPayment) RecurringPayment {
	url := baseURL(c)

	return RecurringPayment{
		DefaultModel: model.DefaultModel,
		RecurringPaymentEditable: RecurringPaymentEditable{
			AccountID:   model.AccountID,
			Type:        model.Type,
			Amount:      model.Amount,
			Frequency:   model.Frequency,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			DayOfMonth:  model.DayOfMonth,
			DayOfWeek:   model.DayOfWeek,
			Description: model.Description,
			Paused:      model.Paused,
		},
		Links: RecurringPaymentLinks{
			Self:    fmt.Sprintf("%s/v1/recurring-payments/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type RecurringPaymentListResponse struct {
	Data       []RecurringPayment `json:"data"`                                                          // List of recurring payments
	Error      *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                    // Pagination information
}

type RecurringPaymentCreateResponse struct {
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringPaymentResponse `json:"data"`                                                          // List of created recurring payments
}

func (r *RecurringPaymentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringPaymentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringPaymentResponse struct {
	Data  *RecurringPayment `json:"data"`                                                          // The recurring payment
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringPaymentQueryFilter struct {
	AccountID   ez_uuid.UUID           `form:"account"`                         // ID of the account
	Type        models.TransactionType `form:"type"`                            // INCOME or EXPENSE
	Frequency   models.Frequency       `form:"frequency"`                       // DAILY, WEEKLY or MONTHLY
	Paused      bool                   `form:"paused"`                          // Is the payment paused?
	Description string                 `form:"description" filterField:"false"` // Glob pattern for the description, e.g. "Rent*"
	Offset      uint                   `form:"offset" filterField:"false"`      // The offset of the first recurring payment returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`       // Maximum number of recurring payments to return. Defaults to 50.
}

func (f RecurringPaymentQueryFilter) model() models.RecurringPayment {
	return RecurringPaymentEditable{
		AccountID: f.AccountID.UUID,
		Type:      f.Type,
		Frequency: f.Frequency,
		Paused:    f.Paused,
	}.model()
}
