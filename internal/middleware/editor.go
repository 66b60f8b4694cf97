package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

// RequireEditor rejects sessions whose security level does not allow
// archive mutations. Viewers can read everything but change nothing.
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !claims.IsEditor() {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "editor access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
