// Package auth provides cookie sessions and CSRF protection for staff users.
package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pimify/backend/internal/infrastructure/config"
)

const userIDKey = "user_id"

// ErrNoSession is returned when the request carries no authenticated session
var ErrNoSession = errors.New("no authenticated session")

// SessionManager stores the logged-in staff user id in a signed, encrypted cookie
type SessionManager struct {
	store *sessions.CookieStore
	name  string
}

// NewSessionManager creates a session manager from configuration
func NewSessionManager(cfg config.SessionConfig) (*SessionManager, error) {
	if cfg.AuthKey == "" {
		return nil, errors.New("session auth key is required")
	}
	switch len(cfg.EncKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("session enc key must be 16, 24 or 32 bytes, got %d", len(cfg.EncKey))
	}

	store := sessions.NewCookieStore([]byte(cfg.AuthKey), []byte(cfg.EncKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)

	name := cfg.CookieName
	if name == "" {
		name = "pimify_session"
	}
	return &SessionManager{store: store, name: name}, nil
}

// Login starts a fresh session for userID
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	// decoding errors just mean a stale cookie; a new session replaces it
	session, _ := m.store.New(r, m.name)
	session.Values = map[interface{}]interface{}{userIDKey: userID}
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout expires the session cookie
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.New(r, m.name)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// UserID returns the staff user id stored in the request's session
func (m *SessionManager) UserID(r *http.Request) (string, error) {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		return "", ErrNoSession
	}
	id, ok := session.Values[userIDKey].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// CookieName returns the session cookie name
func (m *SessionManager) CookieName() string {
	return m.name
}

// GenerateKeys returns a fresh hex-encoded session authentication key and
// a 32-byte encryption key
func GenerateKeys() (authKey, encKey string, err error) {
	a := securecookie.GenerateRandomKey(32)
	e := securecookie.GenerateRandomKey(16)
	if a == nil || e == nil {
		return "", "", errors.New("random source unavailable")
	}
	return hex.EncodeToString(a), hex.EncodeToString(e), nil
}
