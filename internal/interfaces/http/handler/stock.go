package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/pimify/backend/internal/application/inventory"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
)

// StockHandler handles stock endpoints. Every write re-aggregates the
// stock quantity of the affected products.
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
	metrics      *telemetry.Metrics
}

// NewStockHandler creates a new StockHandler. metrics may be nil.
func NewStockHandler(stockService *inventoryapp.StockService, metrics *telemetry.Metrics) *StockHandler {
	return &StockHandler{stockService: stockService, metrics: metrics}
}

// List godoc
// @ID           listStocks
// @Summary      List stock rows
// @Tags         stocks
// @Produce      json
// @Param        page         query int    false "Page number" default(1)
// @Param        product_id   query string false "Filter by product"
// @Param        warehouse_id query string false "Filter by warehouse"
// @Success      200 {object} shared.Paginated[inventoryapp.StockDetailResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/stocks/ [get]
// @Router       /admin/stocks [get]
func (h *StockHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.stockService.List(c.Request.Context(), inventoryapp.StockListFilter{
		Page:        page,
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getStock
// @Summary      Get a stock row
// @Tags         admin-stocks
// @Produce      json
// @Param        id path string true "Stock ID"
// @Success      200 {object} inventoryapp.StockDetailResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/stocks/{id} [get]
func (h *StockHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	stock, err := h.stockService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// Create godoc
// @ID           createStock
// @Summary      Create a stock row
// @Tags         admin-stocks
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockRequest true "Stock"
// @Success      201 {object} inventoryapp.StockDetailResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Unknown product or warehouse"
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/stocks [post]
func (h *StockHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	stock, err := h.stockService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.StockWrite(c.Request.Context(), "create")
	h.Created(c, stock)
}

// Update godoc
// @ID           updateStock
// @Summary      Update a stock row
// @Description  Moving a row to another product re-aggregates both products
// @Tags         admin-stocks
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Stock ID"
// @Param        request body inventoryapp.UpdateStockRequest true "Changes"
// @Success      200 {object} inventoryapp.StockDetailResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/stocks/{id} [put]
func (h *StockHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req inventoryapp.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	stock, err := h.stockService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.StockWrite(c.Request.Context(), "update")
	h.Success(c, stock)
}

// Delete godoc
// @ID           deleteStock
// @Summary      Delete a stock row
// @Tags         admin-stocks
// @Param        id path string true "Stock ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/stocks/{id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.stockService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.StockWrite(c.Request.Context(), "delete")
	h.NoContent(c)
}
