package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/pimify/backend/internal/application/partner"
)

// ProductSupplierHandler handles product-supplier link endpoints
type ProductSupplierHandler struct {
	BaseHandler
	linkService *partnerapp.ProductSupplierService
}

// NewProductSupplierHandler creates a new ProductSupplierHandler
func NewProductSupplierHandler(linkService *partnerapp.ProductSupplierService) *ProductSupplierHandler {
	return &ProductSupplierHandler{linkService: linkService}
}

// List godoc
// @ID           listProductSuppliers
// @Summary      List product-supplier links
// @Tags         product-suppliers
// @Produce      json
// @Param        page        query int    false "Page number" default(1)
// @Param        product_id  query string false "Filter by product"
// @Param        supplier_id query string false "Filter by supplier"
// @Success      200 {object} shared.Paginated[partnerapp.ProductSupplierResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /private/product-supplier/ [get]
// @Router       /admin/product-suppliers [get]
func (h *ProductSupplierHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.linkService.List(c.Request.Context(), page, c.Query("product_id"), c.Query("supplier_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getProductSupplier
// @Summary      Get a product-supplier link
// @Tags         admin-product-suppliers
// @Produce      json
// @Param        id path string true "Link ID"
// @Success      200 {object} partnerapp.ProductSupplierResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/product-suppliers/{id} [get]
func (h *ProductSupplierHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	link, err := h.linkService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// Create godoc
// @ID           createProductSupplier
// @Summary      Link a product to a supplier
// @Tags         admin-product-suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateProductSupplierRequest true "Link"
// @Success      201 {object} partnerapp.ProductSupplierResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Unknown product or supplier"
// @Failure      409 {object} dto.ErrorResponse "Pair already linked"
// @Security     SessionAuth
// @Router       /admin/product-suppliers [post]
func (h *ProductSupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateProductSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	link, err := h.linkService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// Update godoc
// @ID           updateProductSupplier
// @Summary      Change a link's terms
// @Tags         admin-product-suppliers
// @Accept       json
// @Produce      json
// @Param        id      path string                                  true "Link ID"
// @Param        request body partnerapp.UpdateProductSupplierRequest true "Changes"
// @Success      200 {object} partnerapp.ProductSupplierResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/product-suppliers/{id} [put]
func (h *ProductSupplierHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req partnerapp.UpdateProductSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	link, err := h.linkService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// Delete godoc
// @ID           deleteProductSupplier
// @Summary      Remove a product-supplier link
// @Tags         admin-product-suppliers
// @Param        id path string true "Link ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/product-suppliers/{id} [delete]
func (h *ProductSupplierHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.linkService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
