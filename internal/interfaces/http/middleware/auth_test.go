package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/auth"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeKeys map[string]*identity.APIKey

func (f fakeKeys) Authenticate(_ context.Context, token string) (*identity.APIKey, error) {
	if token == "broken" {
		return nil, errors.New("connection reset")
	}
	if k, ok := f[token]; ok && k.IsActive {
		return k, nil
	}
	return nil, shared.ErrUnauthorized
}

type fakeSessions struct{ userID string }

func (f fakeSessions) UserID(*http.Request) (string, error) {
	if f.userID == "" {
		return "", auth.ErrNoSession
	}
	return f.userID, nil
}

type fakeStaff map[string]*identity.StaffUser

func (f fakeStaff) CurrentUser(_ context.Context, id string) (*identity.StaffUser, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, shared.ErrUnauthorized
}

func newStaffUser(t *testing.T, id string, mutate func(u *identity.StaffUser)) *identity.StaffUser {
	t.Helper()
	u, err := identity.NewStaffUser(id, "s3cret-pass", false)
	require.NoError(t, err)
	u.ID = id
	if mutate != nil {
		mutate(u)
	}
	return u
}

func TestAPIKeyAuth(t *testing.T) {
	active, err := identity.NewAPIKey("storefront", "sk_good")
	require.NoError(t, err)
	active.ID = 7
	inactive, err := identity.NewAPIKey("old", "sk_old")
	require.NoError(t, err)
	inactive.Deactivate()

	router := gin.New()
	router.Use(RequestID(), logger.GinMiddleware(zap.NewNop()))
	router.Use(APIKeyAuth(fakeKeys{"sk_good": active, "sk_old": inactive}, nil))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.GinPrincipalKey)+"|"+GetAPIKey(c).Name)
	})

	tests := []struct {
		name   string
		token  string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `"error":"Unauthorized"`},
		{"unknown key", "sk_nope", http.StatusUnauthorized, `"error":"Unauthorized"`},
		{"inactive key", "sk_old", http.StatusUnauthorized, `"error":"Unauthorized"`},
		{"storage failure is still 401", "broken", http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
		{"active key", "sk_good", http.StatusOK, "api_key:7|storefront"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set(APIKeyHeader, tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestSessionAuthAndStaffOnly(t *testing.T) {
	staff := newStaffUser(t, "staff", nil)
	customer := newStaffUser(t, "customer", func(u *identity.StaffUser) { u.IsStaff = false })
	retired := newStaffUser(t, "retired", func(u *identity.StaffUser) { u.IsActive = false })
	users := fakeStaff{"staff": staff, "customer": customer, "retired": retired}

	serve := func(sessionUser string) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/", SessionAuth(fakeSessions{userID: sessionUser}, users), StaffOnly(), func(c *gin.Context) {
			c.String(http.StatusOK, GetStaffUser(c).Username)
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	t.Run("no session", func(t *testing.T) {
		w := serve("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"Authentication required"`)
	})

	t.Run("session for a deleted user", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve("ghost").Code)
	})

	t.Run("non-staff user", func(t *testing.T) {
		w := serve("customer")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"FORBIDDEN"`)
	})

	t.Run("inactive staff user", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve("retired").Code)
	})

	t.Run("staff user", func(t *testing.T) {
		w := serve("staff")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "staff", w.Body.String())
	})
}

func TestStaffOnly_WithoutSessionAuth(t *testing.T) {
	router := gin.New()
	router.GET("/", StaffOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
