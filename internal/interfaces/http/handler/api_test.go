package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pimify/backend/internal/domain/exchange"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/pimify/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upload posts a single-file multipart form
func (s *testServer) upload(path, field, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) product(name, sku, price string) string {
	s.t.Helper()
	p := s.create("/api/v1/admin/products", map[string]any{
		"name": name, "sku": sku, "price": price, "is_active": true,
	})
	return p["id"].(string)
}

func (s *testServer) warehouse(name string) string {
	s.t.Helper()
	w := s.create("/api/v1/admin/warehouses", map[string]any{"name": name, "address": "1 Dock Road"})
	return w["id"].(string)
}

func (s *testServer) stockQuantity(productID string) float64 {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/v1/public/products/"+productID+"/", nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode(s.t, w)["stock_quantity"].(float64)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/public/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"success"}`, w.Body.String())
}

func TestStockAggregation(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("Widget", "W-1", "10.00")
	north := s.warehouse("North")
	south := s.warehouse("South")

	assert.Equal(t, float64(0), s.stockQuantity(productID))

	northStock := s.create("/api/v1/admin/stocks", map[string]any{"product_id": productID, "warehouse_id": north, "quantity": 5})
	assert.Equal(t, float64(5), s.stockQuantity(productID))

	southStock := s.create("/api/v1/admin/stocks", map[string]any{"product_id": productID, "warehouse_id": south, "quantity": 3})
	assert.Equal(t, float64(8), s.stockQuantity(productID))

	w := s.do(http.MethodPut, "/api/v1/admin/stocks/"+northStock["id"].(string), map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(5), s.stockQuantity(productID))

	w = s.do(http.MethodDelete, "/api/v1/admin/stocks/"+southStock["id"].(string), nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, float64(2), s.stockQuantity(productID))

	t.Run("update changes the total", func(t *testing.T) {
		list := items(t, s.do(http.MethodGet, "/api/v1/private/stocks/?product_id="+productID, nil))
		require.Len(t, list, 1)
		id := list[0].(map[string]any)["id"].(string)

		w := s.do(http.MethodPut, "/api/v1/admin/stocks/"+id, map[string]any{"quantity": 12})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, float64(12), s.stockQuantity(productID))
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/admin/stocks", map[string]any{"product_id": productID, "warehouse_id": south, "quantity": -1})
		assert.GreaterOrEqual(t, w.Code, http.StatusBadRequest)
		assert.Less(t, w.Code, http.StatusInternalServerError)
		assert.Equal(t, float64(12), s.stockQuantity(productID))
	})

	t.Run("deleting a warehouse drops its stock", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/v1/admin/warehouses/"+north, nil)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.Equal(t, float64(0), s.stockQuantity(productID))
	})
}

func TestProductPriceFilter(t *testing.T) {
	s := newTestServer(t)
	s.product("Cheap", "P-1", "10.00")
	s.product("Middle", "P-2", "50.00")
	s.product("Dear", "P-3", "100.00")

	list := items(t, s.do(http.MethodGet, "/api/v1/public/products/?min_price=20&max_price=80", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "P-2", list[0].(map[string]any)["sku"])

	list = items(t, s.do(http.MethodGet, "/api/v1/public/products/?min_price=50", nil))
	assert.Len(t, list, 2, "min_price is inclusive")

	list = items(t, s.do(http.MethodGet, "/api/v1/public/products/?min_price=10&max_price=50", nil))
	assert.Len(t, list, 2, "max_price is inclusive")

	w := s.do(http.MethodGet, "/api/v1/public/products/?min_price=cheap", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPagination(t *testing.T) {
	s := newTestServer(t)
	s.product("Widget", "W-1", "10.00")

	body := decode(t, s.do(http.MethodGet, "/api/v1/public/products/?page=1", nil))
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(20), body["page_size"])
	assert.Equal(t, float64(1), body["total_pages"])

	w := s.do(http.MethodGet, "/api/v1/public/products/?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	assert.Empty(t, body["items"])
	assert.Equal(t, float64(1), body["count"])

	for _, page := range []string{"0", "-1", "abc"} {
		w := s.do(http.MethodGet, "/api/v1/public/products/?page="+page, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "page=%s", page)
		assert.Contains(t, w.Body.String(), `"field":"page"`)
	}
}

func TestProductSearch(t *testing.T) {
	s := newTestServer(t)
	s.product("Blue Widget", "W-1", "10.00")
	s.product("Plain", "P-1", "5.00")

	list := items(t, s.do(http.MethodGet, "/api/v1/public/products/?is_active=false&search=widget", nil))
	require.Len(t, list, 1, "search replaces the active filter")
	assert.Equal(t, "W-1", list[0].(map[string]any)["sku"])

	list = items(t, s.do(http.MethodGet, "/api/v1/public/products/?is_active=false", nil))
	assert.Empty(t, list)

	list = items(t, s.do(http.MethodGet, "/api/v1/public/products/?search=%25", nil))
	assert.Empty(t, list, "a literal percent sign matches nothing")
}

func TestProductNotFound(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/public/products/not-a-real-id/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w), "request_id")
}

func TestDuplicateSKU(t *testing.T) {
	s := newTestServer(t)
	s.product("Widget", "W-1", "10.00")

	w := s.do(http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Other", "sku": "W-1", "price": "5"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestAPIKeyLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	created := s.create("/api/v1/admin/api-keys", map[string]any{"name": "storefront"})
	token := created["api_key"].(string)
	id := created["id"].(float64)
	require.Greater(t, len(token), 12)
	assert.Equal(t, true, created["is_active"])

	key, err := s.keys.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "storefront", key.Name)

	list := items(t, s.do(http.MethodGet, "/api/v1/admin/api-keys", nil))
	require.Len(t, list, 1)
	masked := list[0].(map[string]any)["api_key"].(string)
	assert.Equal(t, token[:12]+"...", masked)
	assert.NotContains(t, masked, token[12:])

	path := "/api/v1/admin/api-keys/" + decimal.NewFromFloat(id).String()
	active := func(flag string) int {
		return len(items(t, s.do(http.MethodGet, "/api/v1/admin/api-keys?is_active="+flag, nil)))
	}
	assert.Equal(t, 1, active("true"))
	assert.Equal(t, 0, active("false"))

	w := s.do(http.MethodPost, path+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err = s.keys.Authenticate(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, 0, active("true"))
	assert.Equal(t, 1, active("false"))

	w = s.do(http.MethodPost, path+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err = s.keys.Authenticate(ctx, token)
	assert.NoError(t, err)

	w = s.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	_, err = s.keys.Authenticate(ctx, token)
	assert.Error(t, err)
}

func TestExchangeRates(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, s.rates.ReplaceAll(ctx, []exchange.Rate{
		{Currency: valueobject.Currency("EUR"), Value: decimal.RequireFromString("0.9"), UpdatedAt: time.Now()},
	}))
	s.product("Widget", "W-1", "100.00")

	t.Run("rate", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/exchange-rate/?to_currency=eur", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.InDelta(t, 0.9, body["rate"].(float64), 1e-9)
		assert.Equal(t, "USD", body["from_currency"])
		assert.Equal(t, "EUR", body["to_currency"])
	})

	t.Run("missing rate", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/exchange-rate/?to_currency=JPY", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Exchange rate for JPY not found.", decode(t, w)["error"])
	})

	t.Run("convert price", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/convert-product-price/?product_sku=W-1&to_currency=EUR", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "Widget", body["product"])
		assert.Contains(t, body["price"], "90.00")
	})

	t.Run("conversion failed", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/convert-product-price/?product_sku=W-1&to_currency=JPY", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "CONVERSION_FAILED", body["code"])
		assert.True(t, strings.HasPrefix(body["error"].(string), "Conversion failed"), body["error"])
	})

	t.Run("unknown product", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/convert-product-price/?product_sku=NOPE&to_currency=EUR", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing parameters", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/public/convert-product-price/", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductImages(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("Widget", "W-1", "10.00")

	w := s.upload("/api/v1/admin/products/"+productID+"/images", "image", "front.png", []byte("\x89PNG fake"), map[string]string{"alt_text": "Front"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	image := decode(t, w)
	url := image["image"].(string)
	require.True(t, strings.HasPrefix(url, "/media/product_images/"+productID+"/"), url)
	assert.Equal(t, "Front", image["alt_text"])

	stored := strings.TrimPrefix(url, "/media/")
	exists, err := afero.Exists(s.fs, stored)
	require.NoError(t, err)
	assert.True(t, exists)

	w = s.do(http.MethodGet, "/api/v1/public/products/"+productID+"/images/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), url)

	t.Run("rejects other file types", func(t *testing.T) {
		w := s.upload("/api/v1/admin/products/"+productID+"/images", "image", "notes.txt", []byte("hello"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete removes the file", func(t *testing.T) {
		path := "/api/v1/admin/product-images/" + decimal.NewFromFloat(image["id"].(float64)).String()
		w := s.do(http.MethodDelete, path, nil)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		exists, err := afero.Exists(s.fs, stored)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, nil).Code)
	})
}

func TestOrganizationSingleton(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/public/organization", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/v1/admin/organization", map[string]any{"name": "Acme", "email": "hello@acme.test"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPut, "/api/v1/admin/organization", map[string]any{"name": "Acme Ltd", "founded_date": "2001-02-03"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, s.db.DB.Model(&models.OrganizationModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = s.do(http.MethodGet, "/api/v1/public/organization", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Acme Ltd", body["name"])
	assert.Equal(t, "2001-02-03", body["founded_date"])
	assert.NotContains(t, body, "api_key_id")

	w = s.do(http.MethodPut, "/api/v1/admin/organization", map[string]any{"name": "Acme", "founded_date": "03/02/2001"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProductCSVRoundTrip(t *testing.T) {
	s := newTestServer(t)
	s.create("/api/v1/admin/categories", map[string]any{"name": "Tools", "slug": "tools"})
	s.product("Hammer", "H-1", "12.50")

	csvBody := "name,sku,description,price,currency,is_active,categories\n" +
		"Hammer XL,H-1,Bigger,15.00,USD,true,tools\n" +
		"Saw,S-1,,20.00,USD,false,\n" +
		"Broken,B-1,,not-a-price,USD,true,\n"
	w := s.upload("/api/v1/admin/products/import", "file", "products.csv", []byte(csvBody), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode(t, w)
	assert.Equal(t, float64(1), report["created"])
	assert.Equal(t, float64(1), report["updated"])
	require.Len(t, report["errors"], 1)

	w = s.do(http.MethodGet, "/api/v1/admin/products/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,sku,description,price,currency,is_active,categories", strings.TrimSpace(lines[0]))
	assert.Contains(t, w.Body.String(), "Hammer XL")
	assert.Contains(t, w.Body.String(), "tools")

	t.Run("missing columns", func(t *testing.T) {
		w := s.upload("/api/v1/admin/products/import", "file", "products.csv", []byte("name\nOnly\n"), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCategoryProducts(t *testing.T) {
	s := newTestServer(t)
	category := s.create("/api/v1/admin/categories", map[string]any{"name": "Tools", "slug": "tools"})
	categoryID := category["id"].(string)
	hammer := s.product("Hammer", "H-1", "12.50")
	s.product("Saw", "S-1", "20.00")

	w := s.do(http.MethodPut, "/api/v1/admin/products/"+hammer+"/categories", map[string]any{"category_ids": []string{categoryID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := items(t, s.do(http.MethodGet, "/api/v1/public/categories/"+categoryID+"/products/", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "H-1", list[0].(map[string]any)["sku"])

	w = s.do(http.MethodPost, "/api/v1/admin/categories", map[string]any{"name": "Dup", "slug": "tools"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestSupplierLinks(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("Hammer", "H-1", "12.50")
	supplier := s.create("/api/v1/admin/suppliers", map[string]any{"name": "Forge", "email": "sales@forge.test"})

	link := s.create("/api/v1/admin/product-suppliers", map[string]any{
		"product_id": productID, "supplier_id": supplier["id"], "cost_price": "8.00", "lead_time": 7,
	})
	assert.Equal(t, "Forge", link["supplier"].(map[string]any)["name"])

	list := items(t, s.do(http.MethodGet, "/api/v1/private/product-supplier/", nil))
	require.Len(t, list, 1)

	w := s.do(http.MethodPost, "/api/v1/admin/suppliers", map[string]any{"name": "Bad", "email": "not-an-email"})
	assert.GreaterOrEqual(t, w.Code, http.StatusBadRequest)
	assert.Less(t, w.Code, http.StatusInternalServerError)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	productID := s.product("Hammer", "H-1", "12.50")
	s.create("/api/v1/admin/stocks", map[string]any{"product_id": productID, "warehouse_id": s.warehouse("North"), "quantity": 4})

	w := s.do(http.MethodGet, "/api/v1/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
