package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterSalaryPaymentRoutes registers the routes for salary payments
// with the RouterGroup that is passed.
func RegisterSalaryPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSalaryPaymentList)
		r.GET("", GetSalaryPayments)
		r.POST("", CreateSalaryPayments)
	}

	// Salary payment with ID
	{
		r.OPTIONS("/:id", OptionsSalaryPaymentDetail)
		r.GET("/:id", GetSalaryPayment)
		r.PATCH("/:id", UpdateSalaryPayment)
		r.DELETE("/:id", DeleteSalaryPayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Salary Payments
// @Success		204
// @Router			/v1/salary-payments [options]
func OptionsSalaryPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Salary Payments
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/salary-payments/{id} [options]
func OptionsSalaryPaymentDetail(c *gin.Context) {
	optionsDetail(c)
}

// @Summary		Create salary payments
// @Description	Creates salary payments
// @Tags			Salary Payments
// @Produce		json
// @Success		201			{object}	SalaryPaymentCreateResponse
// @Failure		400			{object}	SalaryPaymentCreateResponse
// @Failure		404			{object}	SalaryPaymentCreateResponse
// @Failure		500			{object}	SalaryPaymentCreateResponse
// @Param			X-User-ID	header		string					true	"ID of the user"
// @Param			salaries	body		[]SalaryPaymentEditable	true	"Salary payments"
// @Router			/v1/salary-payments [post]
func CreateSalaryPayments(c *gin.Context) {
	var editables []SalaryPaymentEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SalaryPaymentCreateResponse{}

	for _, editable := range editables {
		salary := editable.model()

		err = ownAccount(c, salary.AccountID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&salary).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSalaryPayment(c, salary)
		r.Data = append(r.Data, SalaryPaymentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get salary payments
// @Description	Returns a list of salary payments
// @Tags			Salary Payments
// @Produce		json
// @Success		200			{object}	SalaryPaymentListResponse
// @Failure		400			{object}	SalaryPaymentListResponse
// @Failure		500			{object}	SalaryPaymentListResponse
// @Router			/v1/salary-payments [get]
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Param			account		query	string	false	"Filter by account ID"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			paused		query	bool	false	"Is the salary paused?"
// @Param			description	query	string	false	"Filter by description"
// @Param			offset		query	uint	false	"The offset of the first salary payment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of salary payments to return. Defaults to 50."
func GetSalaryPayments(c *gin.Context) {
	var filter SalaryPaymentQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SalaryPaymentListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Scopes(models.OnAccountsOf(userID(c))).
		Order("start_day ASC, description ASC").
		Where(&where, queryFields...)

	if filter.Description != "" {
		q = q.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	} else if slices.Contains(setFields, "Description") {
		q = q.Where("description = ''")
	}

	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var salaries []models.SalaryPayment
	err := q.Find(&salaries).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SalaryPayment, 0, len(salaries))
	for _, salary := range salaries {
		data = append(data, newSalaryPayment(c, salary))
	}

	c.JSON(http.StatusOK, SalaryPaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getSalaryPayment returns the salary payment with the ID from the URI
// if it is paid to an account of the user.
func getSalaryPayment(c *gin.Context) (models.SalaryPayment, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.SalaryPayment{}, err
	}

	var salary models.SalaryPayment
	err = models.DB.Scopes(models.OnAccountsOf(userID(c))).First(&salary, "id = ?", uri.ID.UUID).Error
	return salary, err
}

// @Summary		Get salary payment
// @Description	Returns a specific salary payment
// @Tags			Salary Payments
// @Produce		json
// @Success		200			{object}	SalaryPaymentResponse
// @Failure		400			{object}	SalaryPaymentResponse
// @Failure		404			{object}	SalaryPaymentResponse
// @Failure		500			{object}	SalaryPaymentResponse
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/salary-payments/{id} [get]
func GetSalaryPayment(c *gin.Context) {
	salary, err := getSalaryPayment(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentResponse{
			Error: &e,
		})
		return
	}

	apiResource := newSalaryPayment(c, salary)
	c.JSON(http.StatusOK, SalaryPaymentResponse{Data: &apiResource})
}

// @Summary		Update salary payment
// @Description	Updates an existing salary payment. Only values to be updated need to be specified.
// @Tags			Salary Payments
// @Accept			json
// @Produce		json
// @Success		200			{object}	SalaryPaymentResponse
// @Failure		400			{object}	SalaryPaymentResponse
// @Failure		404			{object}	SalaryPaymentResponse
// @Failure		500			{object}	SalaryPaymentResponse
// @Param			X-User-ID	header		string					true	"ID of the user"
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			salary		body		SalaryPaymentEditable	true	"Salary payment"
// @Router			/v1/salary-payments/{id} [patch]
func UpdateSalaryPayment(c *gin.Context) {
	salary, err := getSalaryPayment(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SalaryPaymentEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentResponse{
			Error: &e,
		})
		return
	}

	var data SalaryPaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentResponse{
			Error: &e,
		})
		return
	}

	if slices.Contains(updateFields, any("AccountID")) {
		err = ownAccount(c, data.AccountID)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SalaryPaymentResponse{
				Error: &e,
			})
			return
		}
	}

	err = models.DB.Model(&salary).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SalaryPaymentResponse{
			Error: &e,
		})
		return
	}

	apiResource := newSalaryPayment(c, salary)
	c.JSON(http.StatusOK, SalaryPaymentResponse{Data: &apiResource})
}

// @Summary		Delete salary payment
// @Description	Deletes a salary payment
// @Tags			Salary Payments
// @Success		204
// @Failure		400			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/salary-payments/{id} [delete]
func DeleteSalaryPayment(c *gin.Context) {
	salary, err := getSalaryPayment(c)
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&salary).Error
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
