package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func handleError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	(&BaseHandler{}).HandleError(c, err)
	return w
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, `"code":"NOT_FOUND"`},
		{"wrapped not found", errors.Join(errors.New("ctx"), shared.ErrNotFound), http.StatusNotFound, `"error":"Resource not found"`},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, `"code":"ALREADY_EXISTS"`},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, `"code":"INVALID_INPUT"`},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, `"code":"FORBIDDEN"`},
		{
			"conversion failure exposes its reason",
			shared.ErrConversionFailed.Wrap(errors.New("rate USD -> XYZ does not exist")),
			http.StatusBadRequest,
			`"error":"Conversion failed: rate USD -> XYZ does not exist"`,
		},
		{"key exhaustion", identity.ErrAPIKeyExhausted, http.StatusServiceUnavailable, `"code":"API_KEY_EXHAUSTED"`},
		{
			"validation error lists fields",
			shared.NewValidationError("name", "This field is required."),
			http.StatusBadRequest,
			`"details":[{"field":"name","message":"This field is required."}]`,
		},
		{"unmapped domain code hides its message", shared.NewDomainError("PASSWORD_HASH_ERROR", "bcrypt exploded"), http.StatusInternalServerError, `"error":"An unexpected error occurred"`},
		{"plain error", errors.New("dial tcp: refused"), http.StatusInternalServerError, `"code":"INTERNAL_ERROR"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "bcrypt")
			assert.NotContains(t, w.Body.String(), "dial tcp")
		})
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query string
		page  int
		err   bool
	}{
		{"", 1, false},
		{"?page=3", 3, false},
		{"?page=0", 0, true},
		{"?page=-1", 0, true},
		{"?page=last", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			page, err := pageParam(c)
			if tt.err {
				var validationErr *shared.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.page, page)
		})
	}
}

func TestQueryError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=0", nil)
	_, err := pageParam(c)
	(&BaseHandler{}).QueryError(c, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNPROCESSABLE_ENTITY"`)
	assert.Contains(t, w.Body.String(), `"field":"page"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	(&BaseHandler{}).QueryError(c, shared.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderingParam(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?ordering=-price", nil)
	field, dir := orderingParam(c)
	assert.Equal(t, "price", field)
	assert.Equal(t, "desc", dir)

	c.Request = httptest.NewRequest(http.MethodGet, "/?ordering=name", nil)
	field, dir = orderingParam(c)
	assert.Equal(t, "name", field)
	assert.Equal(t, "asc", dir)
}

func TestBindError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	(&BaseHandler{}).BindError(c, errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"UNPROCESSABLE_ENTITY"`)
	assert.Contains(t, w.Body.String(), `"field":"body"`)
}
