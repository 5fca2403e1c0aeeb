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

type GoalEditable struct {
	ParentID     *uuid.UUID      `json:"parentId" example:"2f2c5a4e-0a11-4d3c-9e1c-3b7e0f1b7a55"`                                                  // ID of the parent goal, if any
	Name         string          `json:"name" example:"Vacation" default:""`                                                                       // Name of the goal
	Note         string          `json:"note" example:"Two weeks in Portugal" default:""`                                                          // A longer description of the goal
	TargetAmount decimal.Decimal `json:"targetAmount" example:"1500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount to save
	MinBalance   decimal.Decimal `json:"minBalance" example:"100" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001" default:"0"` // Balance to keep on top of the target amount
	TargetDate   types.Date      `json:"targetDate" example:"2024-08-01"`                                                                          // Date the target amount must be saved by
	Achieved     bool            `json:"achieved" example:"false" default:"false"`                                                                 // Achieved goals do not reserve money
}

// model returns the database resource for the editable fields
func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		ParentID:     editable.ParentID,
		Name:         editable.Name,
		Note:         editable.Note,
		TargetAmount: editable.TargetAmount,
		MinBalance:   editable.MinBalance,
		TargetDate:   editable.TargetDate,
		Achieved:     editable.Achieved,
	}
}

type GoalLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/goals/0b4a8c4e-4a0c-4d3b-8f0e-2f1c0f1c0a7e"`            // The goal itself
	Children string `json:"children" example:"https://example.com/api/v1/goals?parent=0b4a8c4e-4a0c-4d3b-8f0e-2f1c0f1c0a7e"` // Sub-goals of the goal
}

// Goal is the API v1 representation of a Goal.
type Goal struct {
	models.DefaultModel
	GoalEditable
	Links GoalLinks `json:"links"`
}

func newGoal(c *gin.Context, model models.Goal) Goal {
	url := baseURL(c)

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			ParentID:     model.ParentID,
			Name:         model.Name,
			Note:         model.Note,
			TargetAmount: model.TargetAmount,
			MinBalance:   model.MinBalance,
			TargetDate:   model.TargetDate,
			Achieved:     model.Achieved,
		},
		Links: GoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Children: fmt.Sprintf("%s/v1/goals?parent=%s", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []GoalResponse `json:"data"`                                                          // List of created goals
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // The goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	Parent   ez_uuid.UUID `form:"parent" filterField:"false"` // ID of the parent goal. An empty value selects top-level goals.
	Achieved bool         `form:"achieved"`                   // Is the goal achieved?
	Name     string       `form:"name" filterField:"false"`   // Fuzzy filter for the goal name
	Note     string       `form:"note" filterField:"false"`   // Fuzzy filter for the note
	Search   string       `form:"search" filterField:"false"` // Search for this text in name and note
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first goal returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() models.Goal {
	return GoalEditable{
		Achieved: f.Achieved,
	}.model()
}
