package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keerthi/accidents-backend-go/internal/observability"
)

// Metrics middleware records request counts and latencies per route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
