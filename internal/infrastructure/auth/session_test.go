package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "test_session",
		MaxAge:     3600,
		AuthKey:    "test-authentication-key-0123456789",
		EncKey:     "0123456789abcdef0123456789abcdef",
	}
}

func TestSessionManager_LoginRoundTrip(t *testing.T) {
	m, err := NewSessionManager(testSessionConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.Login(rec, req, "user-123"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/me", nil)
	next.AddCookie(cookies[0])
	id, err := m.UserID(next)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id)
}

func TestSessionManager_Logout(t *testing.T) {
	m, err := NewSessionManager(testSessionConfig())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSessionManager_RejectsMissingOrForgedCookie(t *testing.T) {
	m, err := NewSessionManager(testSessionConfig())
	require.NoError(t, err)

	_, err = m.UserID(httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.ErrorIs(t, err, ErrNoSession)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "forged"})
	_, err = m.UserID(req)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNewSessionManager_ValidatesKeys(t *testing.T) {
	cfg := testSessionConfig()
	cfg.EncKey = "short"
	_, err := NewSessionManager(cfg)
	assert.Error(t, err)

	cfg = testSessionConfig()
	cfg.AuthKey = ""
	_, err = NewSessionManager(cfg)
	assert.Error(t, err)
}

func TestGenerateKeys(t *testing.T) {
	a, e, err := GenerateKeys()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.Len(t, e, 32)

	cfg := testSessionConfig()
	cfg.AuthKey, cfg.EncKey = a, e
	_, err = NewSessionManager(cfg)
	assert.NoError(t, err)
}

func TestCSRFProtector(t *testing.T) {
	protect := NewCSRFProtector(testSessionConfig(), nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	var token string
	h := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = CSRFToken(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, token)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
