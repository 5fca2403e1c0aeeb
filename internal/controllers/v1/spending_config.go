package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterSpendingConfigRoutes registers the routes for spending configs
// with the RouterGroup that is passed.
func RegisterSpendingConfigRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpendingConfigList)
		r.GET("", GetSpendingConfigs)
		r.POST("", CreateSpendingConfigs)
	}

	// Spending config with ID
	{
		r.OPTIONS("/:id", OptionsSpendingConfigDetail)
		r.GET("/:id", GetSpendingConfig)
		r.PATCH("/:id", UpdateSpendingConfig)
		r.DELETE("/:id", DeleteSpendingConfig)
	}

	// Actions
	{
		r.OPTIONS("/:id/activate", OptionsSpendingConfigActivate)
		r.POST("/:id/activate", ActivateSpendingConfig)
		r.OPTIONS("/:id/calculation", OptionsSpendingConfigCalculation)
		r.GET("/:id/calculation", GetSpendingConfigCalculation)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Configs
// @Success		204
// @Router			/v1/spending-configs [options]
func OptionsSpendingConfigList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Configs
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [options]
func OptionsSpendingConfigDetail(c *gin.Context) {
	optionsDetail(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Configs
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id}/activate [options]
func OptionsSpendingConfigActivate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Configs
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id}/calculation [options]
func OptionsSpendingConfigCalculation(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Create spending configs
// @Description	Creates spending configs. A config created with "isActive": true deactivates all other configs.
// @Tags			Spending Configs
// @Produce		json
// @Success		201			{object}	SpendingConfigCreateResponse
// @Failure		400			{object}	SpendingConfigCreateResponse
// @Failure		404			{object}	SpendingConfigCreateResponse
// @Failure		500			{object}	SpendingConfigCreateResponse
// @Param			X-User-ID	header		string						true	"ID of the user"
// @Param			configs		body		[]SpendingConfigEditable	true	"Spending configs"
// @Router			/v1/spending-configs [post]
func CreateSpendingConfigs(c *gin.Context) {
	var editables []SpendingConfigEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SpendingConfigCreateResponse{}

	for _, editable := range editables {
		config := editable.model()
		config.UserID = userID(c)

		err = models.InTransaction(models.DB, func(tx *gorm.DB) error {
			err := tx.Create(&config).Error
			if err != nil {
				return err
			}

			if len(editable.Goals) > 0 {
				err = config.SetGoals(tx, editable.goalLinks())
				if err != nil {
					return err
				}
			}

			if editable.IsActive {
				return config.Activate(tx)
			}
			return nil
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newSpendingConfig(c, config)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, SpendingConfigResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get spending configs
// @Description	Returns a list of spending configs
// @Tags			Spending Configs
// @Produce		json
// @Success		200			{object}	SpendingConfigListResponse
// @Failure		400			{object}	SpendingConfigListResponse
// @Failure		500			{object}	SpendingConfigListResponse
// @Router			/v1/spending-configs [get]
// @Param			X-User-ID	header	string	true	"ID of the user"
// @Param			name		query	string	false	"Filter by name"
// @Param			periodType	query	string	false	"Filter by period type"
// @Param			isActive	query	bool	false	"Is the config active?"
// @Param			offset		query	uint	false	"The offset of the first spending config returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of spending configs to return. Defaults to 50."
func GetSpendingConfigs(c *gin.Context) {
	var filter SpendingConfigQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SpendingConfigListResponse{
			Error: &e,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	where := filter.model()
	q := models.DB.
		Scopes(models.OwnedBy(userID(c))).
		Order("name ASC").
		Where(&where, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, "", "")

	q, limit := paginate(q, setFields, filter.Offset, filter.Limit)

	var configs []models.SpendingConfig
	err := q.Find(&configs).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SpendingConfig, 0, len(configs))
	for _, config := range configs {
		apiResource, err := newSpendingConfig(c, config)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), SpendingConfigListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, SpendingConfigListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// getSpendingConfig returns the spending config of the user with the ID from the URI.
func getSpendingConfig(c *gin.Context) (models.SpendingConfig, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.SpendingConfig{}, err
	}

	id := uri.ID.UUID
	return models.Ledger{DB: models.DB}.SpendingConfig(userID(c), &id)
}

// @Summary		Get spending config
// @Description	Returns a specific spending config
// @Tags			Spending Configs
// @Produce		json
// @Success		200			{object}	SpendingConfigResponse
// @Failure		400			{object}	SpendingConfigResponse
// @Failure		404			{object}	SpendingConfigResponse
// @Failure		500			{object}	SpendingConfigResponse
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [get]
func GetSpendingConfig(c *gin.Context) {
	config, err := getSpendingConfig(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	respondSpendingConfig(c, config)
}

// respondSpendingConfig sends the config as response.
func respondSpendingConfig(c *gin.Context, config models.SpendingConfig) {
	apiResource, err := newSpendingConfig(c, config)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, SpendingConfigResponse{Data: &apiResource})
}

// @Summary		Update spending config
// @Description	Updates an existing spending config. Only values to be updated need to be specified.
// @Description	If "goals" is set, it replaces all goal links of the config.
// @Tags			Spending Configs
// @Accept			json
// @Produce		json
// @Success		200			{object}	SpendingConfigResponse
// @Failure		400			{object}	SpendingConfigResponse
// @Failure		404			{object}	SpendingConfigResponse
// @Failure		500			{object}	SpendingConfigResponse
// @Param			X-User-ID	header		string					true	"ID of the user"
// @Param			id			path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			config		body		SpendingConfigEditable	true	"Spending config"
// @Router			/v1/spending-configs/{id} [patch]
func UpdateSpendingConfig(c *gin.Context) {
	config, err := getSpendingConfig(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpendingConfigEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	var data SpendingConfigEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	// Goals and IsActive are not columns of the config
	columns := slices.DeleteFunc(slices.Clone(updateFields), func(field any) bool {
		return field == "Goals" || field == "IsActive"
	})

	err = models.InTransaction(models.DB, func(tx *gorm.DB) error {
		if len(columns) > 0 {
			update := data.model()
			httputil.SetFields(&config, &update, columns)

			err := tx.Model(&config).Select("", columns...).Updates(update).Error
			if err != nil {
				return err
			}
		}

		if slices.Contains(updateFields, any("Goals")) {
			err := config.SetGoals(tx, data.goalLinks())
			if err != nil {
				return err
			}
		}

		if !slices.Contains(updateFields, any("IsActive")) || data.IsActive == config.IsActive {
			return nil
		}

		if data.IsActive {
			return config.Activate(tx)
		}

		err := tx.Model(&config).Update("is_active", false).Error
		if err != nil {
			return err
		}
		config.IsActive = false
		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	respondSpendingConfig(c, config)
}

// @Summary		Delete spending config
// @Description	Deletes a spending config together with its goal links and cached calculation
// @Tags			Spending Configs
// @Success		204
// @Failure		400			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id} [delete]
func DeleteSpendingConfig(c *gin.Context) {
	config, err := getSpendingConfig(c)
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&config).Error
	if err != nil {
		c.JSON(status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Activate spending config
// @Description	Makes the spending config the active one. All other configs of the user are deactivated.
// @Tags			Spending Configs
// @Produce		json
// @Success		200			{object}	SpendingConfigResponse
// @Failure		400			{object}	SpendingConfigResponse
// @Failure		404			{object}	SpendingConfigResponse
// @Failure		500			{object}	SpendingConfigResponse
// @Param			X-User-ID	header		string	true	"ID of the user"
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id}/activate [post]
func ActivateSpendingConfig(c *gin.Context) {
	config, err := getSpendingConfig(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	err = config.Activate(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingConfigResponse{
			Error: &e,
		})
		return
	}

	respondSpendingConfig(c, config)
}

// @Summary		Get calculation for spending config
// @Description	Returns the daily spending limit calculated with a specific spending config
// @Tags			Spending Configs
// @Produce		json
// @Success		200				{object}	CalculationResponse
// @Failure		400				{object}	CalculationResponse
// @Failure		404				{object}	CalculationResponse
// @Failure		500				{object}	CalculationResponse
// @Param			X-User-ID		header		string	true	"ID of the user"
// @Param			Accept-Language	header		string	false	"Language of the summary"
// @Param			id				path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-configs/{id}/calculation [get]
func GetSpendingConfigCalculation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CalculationResponse{
			Error: &e,
		})
		return
	}

	id := uri.ID.UUID
	respondCalculation(c, &id)
}
