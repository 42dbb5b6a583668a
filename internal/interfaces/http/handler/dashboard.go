package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/pimify/backend/internal/application/report"
)

// DashboardHandler serves the back-office KPIs
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
// @ID           getDashboard
// @Summary      Dashboard KPIs
// @Description  Product counts, stock value in the base currency, low stock and top categories
// @Tags         admin-dashboard
// @Produce      json
// @Success      200 {object} reportapp.DashboardResponse
// @Security     SessionAuth
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
