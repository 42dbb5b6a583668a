package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	exchangeapp "github.com/pimify/backend/internal/application/exchange"
	identityapp "github.com/pimify/backend/internal/application/identity"
	inventoryapp "github.com/pimify/backend/internal/application/inventory"
	partnerapp "github.com/pimify/backend/internal/application/partner"
	reportapp "github.com/pimify/backend/internal/application/report"
	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/pimify/backend/internal/infrastructure/persistence"
	"github.com/pimify/backend/internal/infrastructure/storage"
	"github.com/pimify/backend/internal/interfaces/http/middleware"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testServer wires every handler over an in-memory database and filesystem
type testServer struct {
	t      *testing.T
	db     *persistence.Database
	fs     afero.Fs
	engine *gin.Engine

	rates *persistence.GormExchangeRateRepository
	keys  *identityapp.APIKeyService
	auth  *identityapp.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	fs := afero.NewMemMapFs()
	objects := storage.NewLocalObjectStorageFs(fs, "/media/")

	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	linkRepo := persistence.NewGormProductSupplierRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	apiKeyRepo := persistence.NewGormAPIKeyRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)

	stockService := inventoryapp.NewStockService(persistence.NewGormInventoryScope(db.DB), stockRepo, productRepo, warehouseRepo, nil)
	rateService := exchangeapp.NewRateService(rateRepo, nil, productRepo, valueobject.USD, nil)
	keys := identityapp.NewAPIKeyService(apiKeyRepo, identity.NewKeyIssuer(identity.DefaultAPIKeyPrefix, 0), nil)
	authService := identityapp.NewAuthService(persistence.NewGormStaffUserRepository(db.DB), nil)

	products := NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo, imageRepo, objects, nil))
	categories := NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, nil))
	images := NewImageHandler(catalogapp.NewImageService(productRepo, imageRepo, objects, nil), nil)
	csv := NewProductCSVHandler(catalogapp.NewProductCSVService(productRepo, categoryRepo, nil), nil)
	suppliers := NewSupplierHandler(partnerapp.NewSupplierService(supplierRepo, nil))
	warehouses := NewWarehouseHandler(partnerapp.NewWarehouseService(warehouseRepo, stockService, nil))
	links := NewProductSupplierHandler(partnerapp.NewProductSupplierService(linkRepo, productRepo, supplierRepo, nil))
	stocks := NewStockHandler(stockService, nil)
	exchange := NewExchangeHandler(rateService)
	org := NewOrganizationHandler(identityapp.NewOrganizationService(persistence.NewGormOrganizationRepository(db.DB), apiKeyRepo, nil))
	apiKeys := NewAPIKeyHandler(keys)
	dashboard := NewDashboardHandler(reportapp.NewDashboardService(persistence.NewGormDashboardReader(db.DB), rateService.Converter(), nil))

	engine := gin.New()
	engine.Use(middleware.RequestID())

	public := engine.Group("/api/v1/public")
	public.GET("/health", NewHealthHandler(db).Check)
	public.GET("/organization", org.GetPublic)
	public.GET("/products/", products.List)
	public.GET("/products/:id/", products.Get)
	public.GET("/products/:id/images/", images.List)
	public.GET("/categories/", categories.List)
	public.GET("/categories/:category_id/products/", products.ListByCategory)
	public.GET("/exchange-rate/", exchange.GetRate)
	public.GET("/convert-product-price/", exchange.ConvertProductPrice)

	private := engine.Group("/api/v1/private")
	private.GET("/suppliers/", suppliers.List)
	private.GET("/warehouses/", warehouses.List)
	private.GET("/stocks/", stocks.List)
	private.GET("/product-supplier/", links.List)

	admin := engine.Group("/api/v1/admin")
	admin.GET("/products/export", csv.Export)
	admin.POST("/products/import", csv.Import)
	admin.POST("/products", products.Create)
	admin.PUT("/products/:id", products.Update)
	admin.PUT("/products/:id/categories", products.SetCategories)
	admin.DELETE("/products/:id", products.Delete)
	admin.POST("/products/:id/images", images.Upload)
	admin.DELETE("/product-images/:id", images.Delete)
	admin.POST("/categories", categories.Create)
	admin.GET("/categories/:id", categories.Get)
	admin.PUT("/categories/:id", categories.Update)
	admin.DELETE("/categories/:id", categories.Delete)
	admin.POST("/suppliers", suppliers.Create)
	admin.GET("/suppliers/:id", suppliers.Get)
	admin.PUT("/suppliers/:id", suppliers.Update)
	admin.DELETE("/suppliers/:id", suppliers.Delete)
	admin.POST("/warehouses", warehouses.Create)
	admin.GET("/warehouses/:id", warehouses.Get)
	admin.DELETE("/warehouses/:id", warehouses.Delete)
	admin.POST("/product-suppliers", links.Create)
	admin.PUT("/product-suppliers/:id", links.Update)
	admin.POST("/stocks", stocks.Create)
	admin.GET("/stocks/:id", stocks.Get)
	admin.PUT("/stocks/:id", stocks.Update)
	admin.DELETE("/stocks/:id", stocks.Delete)
	admin.GET("/api-keys", apiKeys.List)
	admin.POST("/api-keys", apiKeys.Create)
	admin.GET("/api-keys/:id", apiKeys.Get)
	admin.POST("/api-keys/:id/activate", apiKeys.Activate)
	admin.POST("/api-keys/:id/deactivate", apiKeys.Deactivate)
	admin.DELETE("/api-keys/:id", apiKeys.Delete)
	admin.GET("/organization", org.Get)
	admin.PUT("/organization", org.Update)
	admin.GET("/dashboard", dashboard.Summary)
	admin.GET("/exchange-rates", exchange.ListRates)

	return &testServer{t: t, db: db, fs: fs, engine: engine, rates: rateRepo, keys: keys, auth: authService}
}

// do sends a request; a non-nil body that is not an io.Reader is JSON encoded
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// create posts body and decodes the created resource
func (s *testServer) create(path string, body any) map[string]any {
	s.t.Helper()
	w := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func items(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	body := decode(t, w)
	list, ok := body["items"].([]any)
	require.True(t, ok, w.Body.String())
	return list
}
