package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
	"github.com/pimify/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// APIKeyHeader carries the public API credential
const APIKeyHeader = "X-API-Key"

// Context keys set by the authentication middleware
const (
	APIKeyContextKey    = "api_key"
	StaffUserContextKey = "staff_user"
)

// APIKeyAuthenticator resolves an API key token
type APIKeyAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.APIKey, error)
}

// SessionReader reads the staff user id stored in the session cookie
type SessionReader interface {
	UserID(r *http.Request) (string, error)
}

// StaffLoader loads the account behind a session
type StaffLoader interface {
	CurrentUser(ctx context.Context, userID string) (*identity.StaffUser, error)
}

// APIKeyAuth admits requests carrying an active key in X-API-Key.
// Every failure, storage errors included, is answered with 401.
func APIKeyAuth(keys APIKeyAuthenticator, metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := c.GetHeader(APIKeyHeader)
		if token == "" {
			metrics.APIKeyAuth(ctx, telemetry.AuthMissing)
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Unauthorized")
			return
		}

		key, err := keys.Authenticate(ctx, token)
		if err != nil {
			metrics.APIKeyAuth(ctx, telemetry.AuthRejected)
			if !errors.Is(err, shared.ErrUnauthorized) {
				logger.GetGinLogger(c).Error("API key lookup failed", zap.Error(err))
			}
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Unauthorized")
			return
		}

		metrics.APIKeyAuth(ctx, telemetry.AuthAccepted)
		c.Set(APIKeyContextKey, key)
		setPrincipal(c, "api_key:"+strconv.FormatUint(uint64(key.ID), 10))
		c.Next()
	}
}

// SessionAuth requires a session naming an existing user. It does not
// check staff status; StaffOnly does.
func SessionAuth(sessions SessionReader, users StaffLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.UserID(c.Request)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrUnauthorized) {
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
				return
			}
			logger.GetGinLogger(c).Error("Failed to load session user", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
			return
		}

		c.Set(StaffUserContextKey, user)
		setPrincipal(c, "staff:"+user.ID)
		c.Next()
	}
}

// StaffOnly refuses sessions of inactive or non-staff accounts. It runs
// after SessionAuth.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetStaffUser(c)
		if user == nil {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !user.CanAccessBackOffice() {
			logger.GetGinLogger(c).Warn("Non-staff session refused", zap.String("user_id", user.ID))
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

// GetStaffUser returns the session user set by SessionAuth
func GetStaffUser(c *gin.Context) *identity.StaffUser {
	if v, ok := c.Get(StaffUserContextKey); ok {
		if u, ok := v.(*identity.StaffUser); ok {
			return u
		}
	}
	return nil
}

// GetAPIKey returns the key set by APIKeyAuth
func GetAPIKey(c *gin.Context) *identity.APIKey {
	if v, ok := c.Get(APIKeyContextKey); ok {
		if k, ok := v.(*identity.APIKey); ok {
			return k
		}
	}
	return nil
}

// setPrincipal records the caller for throttling and request logs
func setPrincipal(c *gin.Context, principal string) {
	c.Set(logger.GinPrincipalKey, principal)
	ctx, reqLogger := logger.WithPrincipal(c.Request.Context(), logger.GetGinLogger(c), principal)
	c.Request = c.Request.WithContext(ctx)
	c.Set(logger.GinLoggerKey, reqLogger)
}
