package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/spendwise/backend/internal/controllers/v1"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
	"github.com/spendwise/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestGoal(t *testing.T, user uuid.UUID, c v1.GoalEditable, expectedStatus ...int) v1.GoalResponse {
	if c.TargetAmount.IsZero() {
		c.TargetAmount = decimal.NewFromInt(500)
	}

	if c.TargetDate.IsZero() {
		c.TargetDate = types.NewDate(2030, 1, 1)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", []v1.GoalEditable{c}, as(user))
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var goal v1.GoalCreateResponse
	test.DecodeResponse(t, &r, &goal)

	if r.Code == http.StatusCreated {
		return goal.Data[0]
	}

	return v1.GoalResponse{}
}

func (suite *TestSuiteStandard) TestGoalsCreate() {
	g := createTestGoal(suite.T(), suite.user, v1.GoalEditable{
		Name:         " Vacation",
		TargetAmount: decimal.NewFromInt(1500),
		MinBalance:   decimal.NewFromInt(100),
		TargetDate:   types.NewDate(2030, 8, 1),
	})

	require.NotNil(suite.T(), g.Data)
	assert.Equal(suite.T(), "Vacation", g.Data.Name)
	assert.Nil(suite.T(), g.Data.ParentID)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/goals?parent=%s", g.Data.ID), g.Data.Links.Children)

	child := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Flights", ParentID: &g.Data.ID})
	require.NotNil(suite.T(), child.Data.ParentID)
	assert.Equal(suite.T(), g.Data.ID, *child.Data.ParentID)
}

func (suite *TestSuiteStandard) TestGoalsCreateInvalid() {
	foreign := createTestGoal(suite.T(), uuid.New(), v1.GoalEditable{})
	missing := uuid.New()

	tests := []struct {
		name     string
		editable v1.GoalEditable
		status   int
		err      string
	}{
		{"Zero target", v1.GoalEditable{TargetAmount: decimal.Zero, TargetDate: types.NewDate(2030, 1, 1)}, http.StatusBadRequest, models.ErrGoalAmountNotPositive.Error()},
		{"Negative min balance", v1.GoalEditable{TargetAmount: decimal.NewFromInt(1), MinBalance: decimal.NewFromInt(-1), TargetDate: types.NewDate(2030, 1, 1)}, http.StatusBadRequest, models.ErrGoalMinBalanceNegative.Error()},
		{"No target date", v1.GoalEditable{TargetAmount: decimal.NewFromInt(1)}, http.StatusBadRequest, models.ErrGoalTargetDateMissing.Error()},
		{"Parent of other user", v1.GoalEditable{ParentID: &foreign.Data.ID, TargetAmount: decimal.NewFromInt(1), TargetDate: types.NewDate(2030, 1, 1)}, http.StatusBadRequest, models.ErrGoalParentOtherUser.Error()},
		{"Parent does not exist", v1.GoalEditable{ParentID: &missing, TargetAmount: decimal.NewFromInt(1), TargetDate: types.NewDate(2030, 1, 1)}, http.StatusNotFound, "there is no goal matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", []v1.GoalEditable{tt.editable}, as(suite.user))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.GoalCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsGetFilter() {
	vacation := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Vacation", Note: "Portugal"})
	_ = createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Flights", ParentID: &vacation.Data.ID})
	_ = createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Hotel", ParentID: &vacation.Data.ID, Achieved: true})
	_ = createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Bike", Note: "A new road bike"})
	_ = createTestGoal(suite.T(), uuid.New(), v1.GoalEditable{Name: "Vacation"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Top level", "parent=", 2},
		{"Children", fmt.Sprintf("parent=%s", vacation.Data.ID), 2},
		{"Achieved", "achieved=true", 1},
		{"Not achieved", "achieved=false", 3},
		{"Fuzzy name", "name=t", 3},
		{"Note", "note=bike", 1},
		{"Empty note", "note=", 2},
		{"Search", "search=port", 1},
		{"Search name and note", "search=bike", 1},
		{"Offset", "offset=3", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var response v1.GoalListResponse

			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/goals?%s", tt.query), "", as(suite.user))
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.len, len(response.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsGetOtherUser() {
	g := createTestGoal(suite.T(), suite.user, v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodGet, g.Data.Links.Self, "", as(uuid.New()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalsUpdate() {
	parent := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Parent"})
	g := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Goal", ParentID: &parent.Data.ID})

	r := test.Request(suite.T(), http.MethodPatch, g.Data.Links.Self, map[string]any{
		"achieved": true,
		"parentId": nil,
	}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Achieved)
	assert.Nil(suite.T(), response.Data.ParentID)
	assert.Equal(suite.T(), "Goal", response.Data.Name)

	// The stored goal matches the response
	r = test.Request(suite.T(), http.MethodGet, g.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var stored v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	assert.Nil(suite.T(), stored.Data.ParentID)
	assert.True(suite.T(), stored.Data.Achieved)

	// Moving the goal below another parent is reflected as well
	other := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Other"})
	r = test.Request(suite.T(), http.MethodPatch, g.Data.Links.Self, map[string]any{"parentId": other.Data.ID}, as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data.ParentID)
	assert.Equal(suite.T(), other.Data.ID, *response.Data.ParentID)
}

func (suite *TestSuiteStandard) TestGoalsUpdateCycle() {
	a := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "A"})
	b := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "B", ParentID: &a.Data.ID})
	c := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "C", ParentID: &b.Data.ID})

	tests := []struct {
		name   string
		parent uuid.UUID
	}{
		{"Own parent", a.Data.ID},
		{"Child as parent", b.Data.ID},
		{"Grandchild as parent", c.Data.ID},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, a.Data.Links.Self, map[string]any{"parentId": tt.parent}, as(suite.user))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.GoalResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, models.ErrGoalParentCycle.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsDelete() {
	parent := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Parent"})
	child := createTestGoal(suite.T(), suite.user, v1.GoalEditable{Name: "Child", ParentID: &parent.Data.ID})

	r := test.Request(suite.T(), http.MethodDelete, parent.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
	assert.Equal(suite.T(), models.ErrGoalHasChildren.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	r = test.Request(suite.T(), http.MethodDelete, child.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, parent.Data.Links.Self, "", as(suite.user))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
