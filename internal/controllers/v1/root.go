package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	user := r.Group("", UserMiddleware())
	RegisterAccountRoutes(user.Group("/accounts"))
	RegisterTransactionRoutes(user.Group("/transactions"))
	RegisterRecurringPaymentRoutes(user.Group("/recurring-payments"))
	RegisterSalaryPaymentRoutes(user.Group("/salary-payments"))
	RegisterGoalRoutes(user.Group("/goals"))
	RegisterSpendingConfigRoutes(user.Group("/spending-configs"))
	RegisterCalculationRoutes(user.Group("/calculation"))
}

// baseURL returns the URL of the API as set by the router.
func baseURL(c *gin.Context) string {
	return c.GetString(string(models.DBContextURL))
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts          string `json:"accounts" example:"https://example.com/api/v1/accounts"`                    // URL of Account collection endpoint
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions"`            // URL of Transaction collection endpoint
	RecurringPayments string `json:"recurringPayments" example:"https://example.com/api/v1/recurring-payments"` // URL of Recurring Payment collection endpoint
	SalaryPayments    string `json:"salaryPayments" example:"https://example.com/api/v1/salary-payments"`       // URL of Salary Payment collection endpoint
	Goals             string `json:"goals" example:"https://example.com/api/v1/goals"`                          // URL of Goal collection endpoint
	SpendingConfigs   string `json:"spendingConfigs" example:"https://example.com/api/v1/spending-configs"`     // URL of Spending Config collection endpoint
	Calculation       string `json:"calculation" example:"https://example.com/api/v1/calculation"`              // URL of the calculation for the active spending config
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := baseURL(c)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:          url + "/v1/accounts",
			Transactions:      url + "/v1/transactions",
			RecurringPayments: url + "/v1/recurring-payments",
			SalaryPayments:    url + "/v1/salary-payments",
			Goals:             url + "/v1/goals",
			SpendingConfigs:   url + "/v1/spending-configs",
			Calculation:       url + "/v1/calculation",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// optionsDetail returns the allowed HTTP methods for a single resource
// after verifying that the ID is valid.
func optionsDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
