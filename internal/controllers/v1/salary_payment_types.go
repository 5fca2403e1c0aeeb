package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	ez_uuid "github.com/spendwise/backend/internal/uuid"
)

type SalaryPaymentEditable struct {
	AccountID      uuid.UUID              `json:"accountId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`                                                   // ID of the account the salary is paid to
	ExpectedAmount decimal.Decimal        `json:"expectedAmount" example:"2400" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount the salary is expected to be
	Description    string                 `json:"description" example:"Salary" default:""`                                                                    // Description of the salary
	StartDay       int                    `json:"startDay" example:"25" minimum:"1" maximum:"31"`                                                             // First day of the month the salary can arrive on
	EndDay         int                    `json:"endDay" example:"28" minimum:"1" maximum:"31"`                                                               // Last day of the month the salary can arrive on
	Frequency      models.SalaryFrequency `json:"frequency" example:"MONTHLY"`                                                                                // MONTHLY or QUARTERLY
	Paused         bool                   `json:"paused" example:"false" default:"false"`                                                                     // Paused salaries are ignored in calculations
}

// model returns the database resource for the editable fields
func (editable SalaryPaymentEditable) model() models.SalaryPayment {
	return models.SalaryPayment{
		AccountID:      editable.AccountID,
		ExpectedAmount: editable.ExpectedAmount,
		Description:    editable.Description,
		StartDay:       editable.StartDay,
		EndDay:         editable.EndDay,
		Frequency:      editable.Frequency,
		Paused:         editable.Paused,
	}
}

type SalaryPaymentLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/salary-payments/d5ab0b5e-1a64-4c1c-9a43-0c7ed9a2b0c2"` // The salary payment itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`     // The account the salary is paid to
}

// SalaryPayment is the API v1 representation of a SalaryPayment.
type SalaryPayment struct {
	models.DefaultModel
	SalaryPaymentEditable
	Links SalaryPaymentLinks `json:"links"`
}

func newSalaryPayment(c *gin.Context, model models.SalaryPayment) SalaryPayment {
	url := baseURL(c)

	return SalaryPayment{
		DefaultModel: model.DefaultModel,
		SalaryPaymentEditable: SalaryPaymentEditable{
			AccountID:      model.AccountID,
			ExpectedAmount: model.ExpectedAmount,
			Description:    model.Description,
			StartDay:       model.StartDay,
			EndDay:         model.EndDay,
			Frequency:      model.Frequency,
			Paused:         model.Paused,
		},
		Links: SalaryPaymentLinks{
			Self:    fmt.Sprintf("%s/v1/salary-payments/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type SalaryPaymentListResponse struct {
	Data       []SalaryPayment `json:"data"`                                                          // List of salary payments
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type SalaryPaymentCreateResponse struct {
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SalaryPaymentResponse `json:"data"`                                                          // List of created salary payments
}

func (s *SalaryPaymentCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SalaryPaymentResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SalaryPaymentResponse struct {
	Data  *SalaryPayment `json:"data"`                                                          // The salary payment
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SalaryPaymentQueryFilter struct {
	AccountID   ez_uuid.UUID           `form:"account"`                         // ID of the account
	Frequency   models.SalaryFrequency `form:"frequency"`                       // MONTHLY or QUARTERLY
	Paused      bool                   `form:"paused"`                          // Is the salary paused?
	Description string                 `form:"description" filterField:"false"` // Fuzzy filter for the description
	Offset      uint                   `form:"offset" filterField:"false"`      // The offset of the first salary payment returned. Defaults to 0.
	Limit       int                    `form:"limit" filterField:"false"`       // Maximum number of salary payments to return. Defaults to 50.
}

func (f SalaryPaymentQueryFilter) model() models.SalaryPayment {
	return SalaryPaymentEditable{
		AccountID: f.AccountID.UUID,
		Frequency: f.Frequency,
		Paused:    f.Paused,
	}.model()
}
