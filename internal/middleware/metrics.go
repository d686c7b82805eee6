package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/metrics"
)

// Metrics records request counts and latency per matched route.
// Unmatched paths are grouped under "unmatched" to bound label cardinality.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.ObserveRequest(c.Request.Method, routeLabel(c), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// routeLabel is the matched route template, or "unmatched".
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
