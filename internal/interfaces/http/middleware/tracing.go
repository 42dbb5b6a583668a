package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// TracingWithConfig wraps otelgin. Span names follow "METHOD /route/:pattern".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return otelgin.Middleware(cfg.ServiceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/api/v1/public/health"
		}),
	)
}

// SpanEnricher runs after authentication and inside the otelgin span. It
// records the principal and marks 4xx/5xx responses as span errors.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		span.SetAttributes(attribute.String("request_id", GetRequestID(c)))
		if principal := c.GetString(logger.GinPrincipalKey); principal != "" {
			span.SetAttributes(attribute.String("enduser.id", principal))
		}

		c.Next()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
