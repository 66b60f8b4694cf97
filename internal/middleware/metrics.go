package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type requestRecorder interface {
	RecordRequest(method, path, status string, duration time.Duration)
}

// Metrics records request counts and latency per route template.
func Metrics(recorder requestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		recorder.RecordRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
