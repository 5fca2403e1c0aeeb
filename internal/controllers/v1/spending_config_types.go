package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// SpendingConfigGoal links a goal to a spending config.
type SpendingConfigGoal struct {
	GoalID   uuid.UUID `json:"goalId" example:"0b4a8c4e-4a0c-4d3b-8f0e-2f1c0f1c0a7e"` // ID of the goal
	Priority int       `json:"priority" example:"10" default:"0"`                     // Goals with higher priority are listed first in the breakdown
}

type SpendingConfigEditable struct {
	Name                     string               `json:"name" example:"Until payday" default:""`                                                                        // Name of the config
	PeriodType               models.PeriodType    `json:"periodType" example:"TO_NEXT_SALARY"`                                                                           // TO_NEXT_SALARY, TO_END_OF_MONTH, CUSTOM_DAYS or TO_DATE
	CustomDays               *int                 `json:"customDays" example:"14" minimum:"1"`                                                                           // Length of the period for CUSTOM_DAYS
	EndDate                  *types.Date          `json:"endDate" example:"2024-04-30"`                                                                                  // End of the period for TO_DATE
	SalaryDate               *types.Date          `json:"salaryDate" example:"2024-03-28"`                                                                               // Next salary date for TO_NEXT_SALARY. Defaults to 14 days from today.
	IncludeSalary            bool                 `json:"includeSalary" example:"true" default:"false"`                                                                  // Add expected salaries to the available amount
	IncludeRecurringIncome   bool                 `json:"includeRecurringIncome" example:"true" default:"false"`                                                         // Add recurring income to the available amount
	IncludeRecurringExpenses bool                 `json:"includeRecurringExpenses" example:"true" default:"false"`                                                       // Deduct recurring expenses from the available amount
	EmergencyBuffer          decimal.Decimal      `json:"emergencyBuffer" example:"250" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Amount that is never available for spending
	IsActive                 bool                 `json:"isActive" example:"true" default:"false"`                                                                       // Setting this to true deactivates all other configs
	Goals                    []SpendingConfigGoal `json:"goals"`                                                                                                         // Goals the config reserves money for
}

// model returns the database resource for the editable fields.
//
// IsActive and Goals are not part of the model, they are set
// with SpendingConfig.Activate and SpendingConfig.SetGoals.
func (editable SpendingConfigEditable) model() models.SpendingConfig {
	return models.SpendingConfig{
		Name:                     editable.Name,
		PeriodType:               editable.PeriodType,
		CustomDays:               editable.CustomDays,
		EndDate:                  editable.EndDate,
		SalaryDate:               editable.SalaryDate,
		IncludeSalary:            editable.IncludeSalary,
		IncludeRecurringIncome:   editable.IncludeRecurringIncome,
		IncludeRecurringExpenses: editable.IncludeRecurringExpenses,
		EmergencyBuffer:          editable.EmergencyBuffer,
	}
}

// goalLinks returns the goal links for the database.
func (editable SpendingConfigEditable) goalLinks() []models.ConfigGoal {
	links := make([]models.ConfigGoal, 0, len(editable.Goals))
	for _, g := range editable.Goals {
		links = append(links, models.ConfigGoal{GoalID: g.GoalID, Priority: g.Priority})
	}
	return links
}

type SpendingConfigLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/spending-configs/a0909e84-e8f9-4cb6-82a5-025dff105ff2"`                    // The spending config itself
	Activate    string `json:"activate" example:"https://example.com/api/v1/spending-configs/a0909e84-e8f9-4cb6-82a5-025dff105ff2/activate"`       // Activates the config
	Calculation string `json:"calculation" example:"https://example.com/api/v1/spending-configs/a0909e84-e8f9-4cb6-82a5-025dff105ff2/calculation"` // The calculation for this config
}

// SpendingConfig is the API v1 representation of a SpendingConfig.
type SpendingConfig struct {
	models.DefaultModel
	SpendingConfigEditable
	Links SpendingConfigLinks `json:"links"`
}

func newSpendingConfig(c *gin.Context, model models.SpendingConfig) (SpendingConfig, error) {
	links, err := model.Goals(models.DB)
	if err != nil {
		return SpendingConfig{}, err
	}

	goals := make([]SpendingConfigGoal, 0, len(links))
	for _, link := range links {
		goals = append(goals, SpendingConfigGoal{GoalID: link.GoalID, Priority: link.Priority})
	}

	url := fmt.Sprintf("%s/v1/spending-configs/%s", baseURL(c), model.ID)

	return SpendingConfig{
		DefaultModel: model.DefaultModel,
		SpendingConfigEditable: SpendingConfigEditable{
			Name:                     model.Name,
			PeriodType:               model.PeriodType,
			CustomDays:               model.CustomDays,
			EndDate:                  model.EndDate,
			SalaryDate:               model.SalaryDate,
			IncludeSalary:            model.IncludeSalary,
			IncludeRecurringIncome:   model.IncludeRecurringIncome,
			IncludeRecurringExpenses: model.IncludeRecurringExpenses,
			EmergencyBuffer:          model.EmergencyBuffer,
			IsActive:                 model.IsActive,
			Goals:                    goals,
		},
		Links: SpendingConfigLinks{
			Self:        url,
			Activate:    url + "/activate",
			Calculation: url + "/calculation",
		},
	}, nil
}

type SpendingConfigListResponse struct {
	Data       []SpendingConfig `json:"data"`                                                          // List of spending configs
	Error      *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination      `json:"pagination"`                                                    // Pagination information
}

type SpendingConfigCreateResponse struct {
	Error *string                  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SpendingConfigResponse `json:"data"`                                                          // List of created spending configs
}

func (s *SpendingConfigCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SpendingConfigResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpendingConfigResponse struct {
	Data  *SpendingConfig `json:"data"`                                                          // The spending config
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SpendingConfigQueryFilter struct {
	Name       string            `form:"name" filterField:"false"`   // Fuzzy filter for the name
	PeriodType models.PeriodType `form:"periodType"`                 // Filter by period type
	IsActive   bool              `form:"isActive"`                   // Is the config active?
	Offset     uint              `form:"offset" filterField:"false"` // The offset of the first spending config returned. Defaults to 0.
	Limit      int               `form:"limit" filterField:"false"`  // Maximum number of spending configs to return. Defaults to 50.
}

func (f SpendingConfigQueryFilter) model() models.SpendingConfig {
	return models.SpendingConfig{
		PeriodType: f.PeriodType,
		IsActive:   f.IsActive,
	}
}
