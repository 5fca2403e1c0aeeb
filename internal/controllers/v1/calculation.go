package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/projection"
)

// CalculationTTL is how long calculations are cached.
var CalculationTTL = projection.DefaultTTL

// RegisterCalculationRoutes registers the routes for the calculation of the
// active spending config with the RouterGroup that is passed.
func RegisterCalculationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCalculation)
	r.GET("", GetCalculation)
}

type CalculationLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/spending-configs/a0909e84-e8f9-4cb6-82a5-025dff105ff2/calculation"` // The calculation for the spending config
	SpendingConfig string `json:"spendingConfig" example:"https://example.com/api/v1/spending-configs/a0909e84-e8f9-4cb6-82a5-025dff105ff2"`   // The spending config used
}

// Calculation is the API v1 representation of a calculation.
type Calculation struct {
	projection.Result
	Summary string           `json:"summary" example:"You can spend 80.00 per day until 2024-03-25 (10 days). 67.50 are left for today."` // The result in one sentence, in the language from the Accept-Language header
	Links   CalculationLinks `json:"links"`
}

type CalculationResponse struct {
	Data  *Calculation `json:"data"`                                               // The calculation
	Error *string      `json:"error" example:"there is no active spending config"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Calculation
// @Success		204
// @Router			/v1/calculation [options]
func OptionsCalculation(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get calculation
// @Description	Returns the daily spending limit calculated with the active spending config.
// @Description	Calculations are cached until they expire or data they depend on changes.
// @Tags			Calculation
// @Produce		json
// @Success		200				{object}	CalculationResponse
// @Failure		400				{object}	CalculationResponse
// @Failure		404				{object}	CalculationResponse
// @Failure		500				{object}	CalculationResponse
// @Param			X-User-ID		header		string	true	"ID of the user"
// @Param			Accept-Language	header		string	false	"Language of the summary"
// @Router			/v1/calculation [get]
func GetCalculation(c *gin.Context) {
	respondCalculation(c, nil)
}

// respondCalculation calculates for the config with the given ID, or for
// the active config if it is nil, and sends the result.
func respondCalculation(c *gin.Context, configID *uuid.UUID) {
	service := projection.Service{
		DB:  models.DB,
		TTL: CalculationTTL,
	}

	result, err := service.Calculate(userID(c), configID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CalculationResponse{
			Error: &e,
		})
		return
	}

	url := fmt.Sprintf("%s/v1/spending-configs/%s", baseURL(c), result.SpendingConfigID)
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", max(0, int(time.Until(result.ExpiresAt).Seconds()))))

	c.JSON(http.StatusOK, CalculationResponse{
		Data: &Calculation{
			Result:  result,
			Summary: projection.Summary(result, projection.MatchLanguage(c.GetHeader("Accept-Language"))),
			Links: CalculationLinks{
				Self:           url + "/calculation",
				SpendingConfig: url,
			},
		},
	})
}
