package middleware

import (
	"credpool/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Metrics times every request and records the route/status_class counter
// from §4.11.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		monitoring.RecordRequest(path, c.Writer.Status())
	}
}
