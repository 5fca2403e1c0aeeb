package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/httputil"
)

// UserHeader carries the ID of the authenticated user. It is set by the
// gateway in front of the API.
const UserHeader = "X-User-ID"

const contextUserID = "sw-user-id"

// UserMiddleware reads the user ID from the request and aborts requests
// without a valid one.
//
// OPTIONS requests pass without a user ID since CORS preflight requests
// never carry custom headers.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		id, err := uuid.Parse(c.GetHeader(UserHeader))
		if err != nil || id == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, httputil.HTTPError{
				Error: errUserIDMissing.Error(),
			})
			return
		}

		c.Set(contextUserID, id)
		c.Next()
	}
}

// userID returns the ID of the user making the request.
func userID(c *gin.Context) uuid.UUID {
	return c.MustGet(contextUserID).(uuid.UUID)
}
