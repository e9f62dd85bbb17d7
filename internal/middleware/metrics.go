package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aremaru/backend/internal/metrics"
)

// Metrics counts requests per method, matched route and status code.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
