package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DatabasePinger reports whether the database answers
type DatabasePinger interface {
	Ping() error
}

// HealthHandler answers liveness probes
type HealthHandler struct {
	BaseHandler
	db DatabasePinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabasePinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @ID           healthCheck
// @Summary      Health check
// @Description  Pings the database
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.AckResponse
// @Failure      503 {object} dto.ErrorResponse
// @Router       /public/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Error("health check failed", zap.Error(err))
		h.ServiceUnavailable(c, "Database unavailable")
		return
	}
	h.Ack(c, http.StatusOK, "success")
}
