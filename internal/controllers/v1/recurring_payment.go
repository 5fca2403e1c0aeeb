package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRecurringPaymentRoutes registers the routes for recurring payments
// with the RouterGroup that is passed.
func RegisterRecurringPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringPaymentList)
		r.GET("", GetRecurringPayments)
		r.POST("", CreateRecurringPayments)
	}

	// Recurring payment with ID
	{
		r.OPTIONS("/:id", OptionsRecurringPaymentDetail)
		r.GET("/:id", GetRecurringPayment)
		r.PATCH("/:id", UpdateRecurringPayment)
		r.DELETE("/:id", DeleteRecurringPayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Payments
// @Success		204
// @Router			/v1/recurring-payments [options]
func OptionsRecurringPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Payments
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-payments/{id} [options]
func OptionsRecurringPaymentDetail(c *gin.Context) {
	optionsDetail(c)
}

// @Summary		Create recurring payments
// @Description	Creates recurring payments
// @Tags			Recurring Payments
// @Produce		json
// @Success		201			{object}	RecurringPaymentCreateResponse
// @Failure		400			{object}	RecurringPaymentCreateResponse
// @Failure		404			{object}	RecurringPaymentCreateResponse
// @Failure		500			{object}	RecurringPaymentCreateResponse
// @Param			X-User-ID	header		string						true	"ID of the user"
// @Param			payments	body		[]RecurringPaymentEditable	true	"Recurring payments"
// @Router			/v1/recurring-payments [post]
func CreateRecurringPayments(c *gin.Context) {
	var editables []RecurringPaymentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringPaymentCreateResponse{}

	for _, editable := range editables {
		payment := editable.model()

		err = ownAccount(c, payment.AccountID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&payment).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringPayment(c, payment)
		r.Data = append(r.Data, RecurringPaymentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring payments
// @Description	Returns a list of recurring payments
// @Tags			Recurring Payments
// @Produce		json
// @Success		200			{object}	RecurringPaymentListResponse
// @Failure		400			{object}	RecurringPaymentListResponse
// @Failure		500			{object}	RecurringPaymentListResponse
// @Router			/v1/recurring-payments [get]
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			type		query	string	false	"Filter by type"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			paused		query	bool	false	"Is the payment paused?"
// @Param			description	query	string	false	"Glob pattern the description must match"
// @Param			offset		query	uint	false	"The offset of the first recurring payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of recurring payments to return. Defaults to 50."
func GetRecurringPayments(c *gin.Context) {
	var filter RecurringPaymentQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, RecurringPaymentListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	var payments []models.RecurringPayment
	err := models.DB.
		Scopes(models.OnAccountsOf(userID(c))).
		Order("start_date ASC, description ASC").
		Where(&where, queryFields...).
		Find(&payments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentListResponse{
			Error: &e,
		})
		return
	}

	// Glob patterns cannot be expressed portably in SQL, the description
	// is therefore matched after the query
	if slices.Contains(setFields, "Description") {
		matching := payments[:0]
		for _, p := range payments {
			if glob.Glob(filter.Description, p.Description) {
				matching = append(matching, p)
			}
		}
		payments = matching
	}

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	total := len(payments)
	start := min(int(filter.Offset), total)
	end := total
	if limit >= 0 {
		end = min(start+limit, total)
	}

	data := make([]RecurringPayment, 0, end-start)
	for _, payment := range payments[start:end] {
		data = append(data, newRecurringPayment(c, payment))
	}

	c.JSON(http.StatusOK, RecurringPaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(total),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getRecurringPayment returns the recurring payment with the ID from the URI
// if it is on an account of the user.
func getRecurringPayment(c *gin.Context) (models.RecurringPayment, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.RecurringPayment{}, err
	}

	var payment models.RecurringPayment
	err = models.DB.Scopes(models.OnAccountsOf(userID(c))).First(&payment, "id = ?", uri.ID.UUID).Error
	return payment, err
}

// @Summary		Get recurring payment
// @Description	Returns a specific recurring payment
// @Tags			Recurring Payments
// @Produce		json
// @Success		200			{object}	RecurringPaymentResponse
// @Failure		400			{object}	RecurringPaymentResponse
// @Failure		404			{object}	RecurringPaymentResponse
// @Failure		500			{object}	RecurringPaymentResponse
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-payments/{id} [get]
func GetRecurringPayment(c *gin.Context) {
	payment, err := getRecurringPayment(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentResponse{
			Error: &e,
		})
		return
	}

	apiResource := newRecurringPayment(c, payment)
	c.JSON(http.StatusOK, RecurringPaymentResponse{Data: &apiResource})
}

// @Summary		Update recurring payment
// @Description	Updates an existing recurring payment. Only values to be updated need to be specified.
// @Tags			Recurring Payments
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringPaymentResponse
// @Failure		400			{object}	RecurringPaymentResponse
// @Failure		404			{object}	RecurringPaymentResponse
// @Failure		500			{object}	RecurringPaymentResponse
// @Param			X-User-ID	header		string						true	"ID of the user"
// @Param			id			path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment		body		RecurringPaymentEditable	true	"Recurring payment"
// @Router			/v1/recurring-payments/{id} [patch]
func UpdateRecurringPayment(c *gin.Context) {
	payment, err := getRecurringPayment(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringPaymentEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentResponse{
			Error: &e,
		})
		return
	}

	var data RecurringPaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentResponse{
			Error: &e,
		})
		return
	}

	if slices.Contains(updateFields, any("AccountID")) {
		err = ownAccount(c, data.AccountID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), RecurringPaymentResponse{
				Error: &e,
			})
			return
		}
	}

	update := data.model()
	httputil.SetFields(&payment, &update, updateFields)

	err = models.DB.Model(&payment).Select("", updateFields...).Updates(update).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringPaymentResponse{
			Error: &e,
		})
		return
	}

	apiResource := newRecurringPayment(c, payment)
	c.JSON(http.StatusOK, RecurringPaymentResponse{Data: &apiResource})
}

// @Summary		Delete recurring payment
// @Description	Deletes a recurring payment
// @Tags			Recurring Payments
// @Success		204
// @Failure		400			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-payments/{id} [delete]
func DeleteRecurringPayment(c *gin.Context) {
	payment, err := getRecurringPayment(c)
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
