package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

// Profiling tags CPU samples taken while serving a request with its route
// and method. Health and swagger requests are not tagged.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/swagger") {
			c.Next()
			return
		}
		labels := map[string]string{
			telemetry.ProfilingLabelRoute:  c.FullPath(),
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
