package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-Api", "yes")
		c.Next()
	})

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "yes", w.Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("test", "/test")
		g.GET("/a", ok).POST("/a", ok).PUT("/a/:id", ok).DELETE("/a/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/test/a"},
			{http.MethodPost, "/api/v1/test/a"},
			{http.MethodPut, "/api/v1/test/a/1"},
			{http.MethodDelete, "/api/v1/test/a/1"},
		} {
			w := serve(engine, tc.method, tc.path, nil)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("skips nil middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(nil, func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		}, nil)
		g.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group(""))

		assert.Len(t, g.middleware, 1)
		w := serve(engine, http.MethodGet, "/test/items", nil)
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups share the parent prefix", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")
		g.Group("products", "/products").GET("", func(c *gin.Context) { c.String(http.StatusOK, "products") })
		g.Group("categories", "/categories").GET("", func(c *gin.Context) { c.String(http.StatusOK, "categories") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "products", serve(engine, http.MethodGet, "/api/v1/catalog/products", nil).Body.String())
		assert.Equal(t, "categories", serve(engine, http.MethodGet, "/api/v1/catalog/categories", nil).Body.String())
	})
}

type stubPinger struct{ err error }

func (p stubPinger) Ping() error { return p.err }

// apiEngine mounts the API with guards that only look at test headers
func apiEngine(t *testing.T, pingErr error) *gin.Engine {
	t.Helper()
	engine := gin.New()
	r := NewRouter(engine)

	deny := func(header string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader(header) == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	RegisterAPI(r, Handlers{
		Health:          handler.NewHealthHandler(stubPinger{err: pingErr}),
		Auth:            &handler.AuthHandler{},
		Product:         &handler.ProductHandler{},
		Category:        &handler.CategoryHandler{},
		Image:           &handler.ImageHandler{},
		ProductCSV:      &handler.ProductCSVHandler{},
		Supplier:        &handler.SupplierHandler{},
		Warehouse:       &handler.WarehouseHandler{},
		ProductSupplier: &handler.ProductSupplierHandler{},
		Stock:           &handler.StockHandler{},
		Exchange:        &handler.ExchangeHandler{},
		Organization:    &handler.OrganizationHandler{},
		APIKey:          &handler.APIKeyHandler{},
		Dashboard:       &handler.DashboardHandler{},
		Docs:            func(c *gin.Context) { c.String(http.StatusOK, "docs") },
	}, Guards{
		APIKey:  deny("X-API-Key"),
		Session: deny("X-Test-Session"),
		Staff:   func(c *gin.Context) { c.Next() },
	})
	r.Setup()
	return engine
}

func TestRegisterAPIRoutes(t *testing.T) {
	engine := apiEngine(t, nil)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/public/health",
		"GET /api/v1/public/organization",
		"GET /api/v1/public/products/",
		"GET /api/v1/public/products/:id/",
		"GET /api/v1/public/products/:id/images/",
		"GET /api/v1/public/categories/",
		"GET /api/v1/public/categories/:category_id/products/",
		"GET /api/v1/public/exchange-rate/",
		"GET /api/v1/public/convert-product-price/",
		"GET /api/v1/private/suppliers/",
		"GET /api/v1/private/warehouses/",
		"GET /api/v1/private/stocks/",
		"GET /api/v1/private/product-supplier/",
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"POST /api/v1/admin/stocks",
		"PUT /api/v1/admin/stocks/:id",
		"DELETE /api/v1/admin/product-images/:id",
		"PUT /api/v1/admin/organization",
		"GET /api/v1/admin/products/export",
		"GET /api/v1/docs/*any",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	assert.False(t, registered["POST /api/v1/admin/organization"], "organization cannot be added")
	assert.False(t, registered["DELETE /api/v1/admin/organization"], "organization cannot be removed")
}

func TestRegisterAPIGuards(t *testing.T) {
	engine := apiEngine(t, nil)

	w := serve(engine, http.MethodGet, "/api/v1/public/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"success"}`, w.Body.String())

	for _, path := range []string{
		"/api/v1/public/products/",
		"/api/v1/public/organization",
		"/api/v1/public/exchange-rate/",
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, path, nil).Code, path)
	}

	for _, path := range []string{
		"/api/v1/private/suppliers/",
		"/api/v1/private/stocks/",
		"/api/v1/admin/dashboard",
		"/api/v1/auth/me",
		"/api/v1/docs/index.html",
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, path, nil).Code, path)
	}

	w = serve(engine, http.MethodGet, "/api/v1/docs/index.html", map[string]string{"X-Test-Session": "staff"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docs", w.Body.String())
}

func TestHealthReportsDatabaseOutage(t *testing.T) {
	engine := apiEngine(t, errors.New("connection refused"))

	w := serve(engine, http.MethodGet, "/api/v1/public/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func serve(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
