package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracing_RecordsPrincipalAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	router := gin.New()
	router.Use(RequestID(), TracingWithConfig(TracingConfig{ServiceName: "pimify-test", Enabled: true}))
	router.Use(func(c *gin.Context) {
		c.Set(logger.GinPrincipalKey, "api_key:3")
		c.Next()
	}, SpanEnricher())
	router.GET("/api/v1/public/products/:id/", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/api/v1/public/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/products/abc/", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/public/health", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1, "health checks are not traced")
	span := spans[0]
	assert.Equal(t, "GET /api/v1/public/products/:id/", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("enduser.id", "api_key:3"))
	assert.Contains(t, span.Attributes(), attribute.String("request_id", w.Header().Get(RequestIDHeader)))
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfiling(t *testing.T) {
	assert.Equal(t, "public", surfaceOf("/api/v1/public/products/:id/"))
	assert.Equal(t, "admin", surfaceOf("/api/v1/admin/dashboard"))
	assert.Equal(t, "other", surfaceOf("/media/*filepath"))

	router := gin.New()
	router.Use(Profiling(true))
	router.GET("/api/v1/admin/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
