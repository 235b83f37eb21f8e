package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
)

const contextKeyIDParam = "id_param"

// RequireIDParam parses the :id path parameter for the named resource.
// Ownership is checked later by the service, which answers 404 for records
// the caller does not own.
func RequireIDParam(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+resource+" ID")
			return
		}

		c.Set(contextKeyIDParam, id)
		c.Next()
	}
}

// GetIDParam returns the id parsed by RequireIDParam
func GetIDParam(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(contextKeyIDParam)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
