package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderName = "X-Request-ID"
	contextKey = "request_id"
)

// Middleware assigns a request id, honouring one supplied by the caller.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(HeaderName, id)
		c.Next()
	}
}

// Value returns the request id stored on the context, if any.
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
