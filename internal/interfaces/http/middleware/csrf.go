package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/auth"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/interfaces/http/dto"
)

// CSRF adapts a net/http CSRF protector to gin. Safe methods pass and
// receive a fresh token in the X-CSRF-Token response header; unsafe
// methods must echo it.
func CSRF(protect func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
		})
		protect(next).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
			return
		}
		c.Header(auth.CSRFHeader, auth.CSRFToken(c.Request))
		c.Next()
	}
}

// CSRFFailureHandler answers rejected requests with the failure envelope
func CSRFFailureHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		message := "CSRF Failed"
		if reason := auth.CSRFFailureReason(r); reason != nil {
			message += ": " + reason.Error()
		}
		body := dto.NewErrorResponseWithRequestID(dto.ErrCodeCSRFFailed, message, logger.GetRequestID(r.Context()))
		if body.RequestID == "" {
			body.RequestID = w.Header().Get(RequestIDHeader)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(body)
	})
}
