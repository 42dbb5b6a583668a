package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/pimify/backend/internal/application/partner"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *partnerapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *partnerapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// List godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Param        page   query int    false "Page number" default(1)
// @Param        search query string false "Search by name"
// @Success      200 {object} shared.Paginated[partnerapp.WarehouseListItem]
// @Failure      401 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/warehouses/ [get]
// @Router       /admin/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.warehouseService.List(c.Request.Context(), page, strings.TrimSpace(c.Query("search")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getWarehouse
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Success      200 {object} partnerapp.WarehouseResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/warehouses/{id} [get]
// @Router       /admin/warehouses/{id} [get]
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Create godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Tags         admin-warehouses
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.WarehouseRequest true "Warehouse"
// @Success      201 {object} partnerapp.WarehouseResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req partnerapp.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// Update godoc
// @ID           updateWarehouse
// @Summary      Replace a warehouse
// @Tags         admin-warehouses
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Warehouse ID"
// @Param        request body partnerapp.WarehouseRequest true "Warehouse"
// @Success      200 {object} partnerapp.WarehouseResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req partnerapp.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Delete godoc
// @ID           deleteWarehouse
// @Summary      Delete a warehouse
// @Description  Removes the warehouse's stock rows and re-aggregates the affected products
// @Tags         admin-warehouses
// @Param        id path string true "Warehouse ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
