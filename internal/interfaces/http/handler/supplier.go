package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/pimify/backend/internal/application/partner"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List godoc
// @ID           listSuppliers
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        page   query int    false "Page number" default(1)
// @Param        search query string false "Search by name or email"
// @Success      200 {object} shared.Paginated[partnerapp.SupplierListItem]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/suppliers/ [get]
// @Router       /admin/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.supplierService.List(c.Request.Context(), page, strings.TrimSpace(c.Query("search")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getSupplier
// @Summary      Get a supplier
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} partnerapp.SupplierResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/suppliers/{id} [get]
// @Router       /admin/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Create godoc
// @ID           createSupplier
// @Summary      Create a supplier
// @Tags         admin-suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.SupplierRequest true "Supplier"
// @Success      201 {object} partnerapp.SupplierResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Update godoc
// @ID           updateSupplier
// @Summary      Replace a supplier
// @Tags         admin-suppliers
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Supplier ID"
// @Param        request body partnerapp.SupplierRequest true "Supplier"
// @Success      200 {object} partnerapp.SupplierResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req partnerapp.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	supplier, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete godoc
// @ID           deleteSupplier
// @Summary      Delete a supplier
// @Tags         admin-suppliers
// @Param        id path string true "Supplier ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
