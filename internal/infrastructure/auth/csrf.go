package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/pimify/backend/internal/infrastructure/config"
)

// CSRFHeader is the request header carrying the CSRF token
const CSRFHeader = "X-CSRF-Token"

// NewCSRFProtector returns gorilla/csrf middleware keyed from the session
// auth key. Token mismatches are answered by onFailure.
func NewCSRFProtector(cfg config.SessionConfig, trustedOrigins []string, onFailure http.Handler) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + cfg.AuthKey))
	opts := []csrf.Option{
		csrf.Secure(cfg.Secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.CookieName("pimify_csrf"),
		csrf.RequestHeader(CSRFHeader),
		csrf.SameSite(csrf.SameSiteLaxMode),
	}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	if onFailure != nil {
		opts = append(opts, csrf.ErrorHandler(onFailure))
	}
	return csrf.Protect(key[:], opts...)
}

// CSRFToken returns the token for the request, for clients to echo in CSRFHeader
func CSRFToken(r *http.Request) string {
	return csrf.Token(r)
}

// CSRFFailureReason explains why a request was rejected
func CSRFFailureReason(r *http.Request) error {
	return csrf.FailureReason(r)
}
