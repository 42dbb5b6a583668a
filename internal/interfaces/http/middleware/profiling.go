package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Pyroscope label names attached to request goroutines
const (
	ProfilingLabelRoute   = "route"
	ProfilingLabelMethod  = "method"
	ProfilingLabelSurface = "surface"
)

// Profiling tags CPU and allocation samples taken while a request runs
// with its route pattern, method and API surface (public, private,
// admin). Unmatched routes are not labelled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		labels := pyroscope.Labels(
			ProfilingLabelRoute, route,
			ProfilingLabelMethod, c.Request.Method,
			ProfilingLabelSurface, surfaceOf(route),
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// surfaceOf returns the segment after the version in /api/v1/<surface>/...
func surfaceOf(route string) string {
	parts := strings.Split(strings.TrimPrefix(route, "/"), "/")
	if len(parts) >= 3 && parts[0] == "api" {
		return parts[2]
	}
	return "other"
}
