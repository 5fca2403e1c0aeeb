package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/types"
)

// Result is a complete calculation. It is also what is stored in the cache.
type Result struct {
	SpendingConfigID          uuid.UUID       `json:"spendingConfigId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`
	CalculatedAt              time.Time       `json:"calculatedAt" example:"2024-03-15T09:12:44Z"`
	ExpiresAt                 time.Time       `json:"expiresAt" example:"2024-03-15T09:42:44Z"`
	Period                    Period          `json:"period"`
	CurrentBalance            decimal.Decimal `json:"currentBalance" example:"1000"`
	ExpectedSalary            decimal.Decimal `json:"expectedSalary" example:"0"`
	ExpectedRecurringIncome   decimal.Decimal `json:"expectedRecurringIncome" example:"0"`
	ExpectedRecurringExpenses decimal.Decimal `json:"expectedRecurringExpenses" example:"0"`
	GoalsReserved             decimal.Decimal `json:"goalsReserved" example:"200"`
	EmergencyBuffer           decimal.Decimal `json:"emergencyBuffer" example:"0"`
	UpcomingTransactions      decimal.Decimal `json:"upcomingTransactions" example:"0"` // Net expenses of scheduled transactions in the period
	AvailableAmount           decimal.Decimal `json:"availableAmount" example:"800"`
	AvailableForGoals         decimal.Decimal `json:"availableForGoals" example:"800"` // The available amount, but never negative
	DailyLimit                decimal.Decimal `json:"dailyLimit" example:"80"`
	SpentToday                decimal.Decimal `json:"spentToday" example:"12.5"`
	RemainingToday            decimal.Decimal `json:"remainingToday" example:"67.5"`
	Breakdown                 Breakdown       `json:"breakdown"`
}

// Breakdown contains every input of the calculation.
type Breakdown struct {
	Accounts             []AccountItem  `json:"accounts"`
	Steps                []Step         `json:"steps"`
	Salaries             []CashFlowItem `json:"salaries"`
	RecurringIncome      []CashFlowItem `json:"recurringIncome"`
	RecurringExpenses    []CashFlowItem `json:"recurringExpenses"`
	Goals                []GoalItem     `json:"goals"`
	UpcomingTransactions []UpcomingItem `json:"upcomingTransactions"`
}

// StepName identifies a step of the waterfall.
//
// swagger:enum StepName
type StepName string

const (
	StepCurrentBalance       StepName = "CURRENT_BALANCE"
	StepExpectedSalary       StepName = "EXPECTED_SALARY"
	StepRecurringIncome      StepName = "RECURRING_INCOME"
	StepRecurringExpenses    StepName = "RECURRING_EXPENSES"
	StepGoalsReserved        StepName = "GOALS_RESERVED"
	StepEmergencyBuffer      StepName = "EMERGENCY_BUFFER"
	StepUpcomingTransactions StepName = "UPCOMING_TRANSACTIONS"
)

// Step is one step from the current balance to the available amount.
type Step struct {
	Name   StepName        `json:"name" example:"GOALS_RESERVED"`
	Amount decimal.Decimal `json:"amount" example:"-200"` // Signed change applied in this step
	Total  decimal.Decimal `json:"total" example:"800"`   // Running total after the step
}

// AccountItem is the balance of one account.
type AccountItem struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name" example:"Checking"`
	Balance decimal.Decimal `json:"balance" example:"1000"`
}

// CashFlowItem is the contribution of one salary or recurring payment.
type CashFlowItem struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	Description string          `json:"description" example:"Rent"`
	Frequency   string          `json:"frequency" example:"MONTHLY"`
	Date        types.Date      `json:"date" example:"2024-03-28"` // First due date in the period
	UnitAmount  decimal.Decimal `json:"unitAmount" example:"50"`
	Occurrences int             `json:"occurrences" example:"2"`
	Amount      decimal.Decimal `json:"amount" example:"100"`
}

// GoalItem is the reservation for one goal.
type GoalItem struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name" example:"Holidays"`
	Priority     int             `json:"priority" example:"1"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"150"`
	MinBalance   decimal.Decimal `json:"minBalance" example:"50"`
	TargetDate   types.Date      `json:"targetDate" example:"2024-03-25"`
	DaysToTarget int             `json:"daysToTarget" example:"10"`
	DailyAmount  decimal.Decimal `json:"dailyAmount" example:"20"`
	Reserved     decimal.Decimal `json:"reserved" example:"200"`
}

// UpcomingItem is a scheduled transaction that is already committed.
type UpcomingItem struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"accountId"`
	Date      types.Date      `json:"date" example:"2024-03-20"`
	Type      string          `json:"type" example:"EXPENSE"`
	Amount    decimal.Decimal `json:"amount" example:"30"`
	Note      string          `json:"note" example:"Concert tickets"`
}
