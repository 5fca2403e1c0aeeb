package v1

import (
	"errors"
	"net/http"

	"github.com/spendwise/backend/internal/models"
)

// status returns the appropriate status for a database error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound), errors.Is(err, models.ErrNoActiveConfig):
		return http.StatusNotFound
	case errors.Is(err, models.ErrGoalHasChildren):
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errUserIDMissing = errors.New("the X-User-ID header must be set to the UUID of the user")
	errDateInvalid   = errors.New("dates must be in YYYY-MM-DD format")
)
