package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/pimify/backend/internal/application/identity"
	"github.com/pimify/backend/internal/infrastructure/auth"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AuthHandler handles staff session login and logout
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	sessions    *auth.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// Login godoc
// @ID           login
// @Summary      Log in
// @Description  Starts a cookie session. Non-staff users are logged in but refused by staff routes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} identityapp.UserResponse
// @Failure      401 {object} dto.ErrorResponse "Invalid username or password"
// @Failure      422 {object} dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.sessions.Login(c.Writer, c.Request, user.ID); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("staff user logged in", zap.String("user_id", user.ID))
	h.Success(c, identityapp.ToUserResponse(user))
}

// Logout godoc
// @ID           logout
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.AckResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Ack(c, http.StatusOK, "Logged out")
}

// Me godoc
// @ID           currentUser
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} identityapp.UserResponse
// @Failure      401 {object} dto.ErrorResponse "Authentication required"
// @Security     SessionAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetStaffUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, identityapp.ToUserResponse(user))
}
