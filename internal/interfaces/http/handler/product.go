package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/domain/shared"
)

// ProductHandler handles product endpoints of the public and admin surfaces
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Paginated product list. search matches name or description and restricts to active products.
// @Tags         products
// @Produce      json
// @Param        page       query int     false "Page number" default(1)
// @Param        is_active  query bool    false "Filter by active flag"
// @Param        search     query string  false "Case-insensitive search"
// @Param        min_price  query number  false "Inclusive lower price bound"
// @Param        max_price  query number  false "Inclusive upper price bound"
// @Param        ordering   query string  false "Sort field, prefix with - for descending" example(-price)
// @Success      200 {object} shared.Paginated[catalogapp.ProductListItem]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse "Invalid page number"
// @Security     ApiKeyAuth
// @Router       /public/products/ [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}

	errs := &shared.ValidationError{}
	filter := catalogapp.ProductListFilter{
		Page:       page,
		IsActive:   boolQuery(c, "is_active", errs),
		Search:     strings.TrimSpace(c.Query("search")),
		MinPrice:   decimalQuery(c, "min_price", errs),
		MaxPrice:   decimalQuery(c, "max_price", errs),
		CategoryID: c.Query("category_id"),
	}
	if err := errs.OrNil(); err != nil {
		h.HandleError(c, err)
		return
	}
	filter.OrderBy, filter.OrderDir = orderingParam(c)

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product
// @Description  Product details with images
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /public/products/{id}/ [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListByCategory godoc
// @ID           listCategoryProducts
// @Summary      List a category's products
// @Tags         categories
// @Produce      json
// @Param        category_id path  string true  "Category ID"
// @Param        page        query int    false "Page number" default(1)
// @Success      200 {object} shared.Paginated[catalogapp.ProductListItem]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /public/categories/{category_id}/products/ [get]
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.productService.ListByCategory(c.Request.Context(), categoryID, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Description  Partial update; omitted fields keep their values
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Changes"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetCategories godoc
// @ID           setProductCategories
// @Summary      Replace a product's categories
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Product ID"
// @Param        request body catalogapp.SetCategoriesRequest true "Category IDs"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products/{id}/categories [put]
func (h *ProductHandler) SetCategories(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalogapp.SetCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	product, err := h.productService.SetCategories(c.Request.Context(), id, req.CategoryIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         admin-products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// orderingParam splits ?ordering=-field into a field and a direction.
// Unknown fields fall back to the repository default.
func orderingParam(c *gin.Context) (string, string) {
	ordering := strings.TrimSpace(c.Query("ordering"))
	if ordering == "" {
		return "", ""
	}
	if field, ok := strings.CutPrefix(ordering, "-"); ok {
		return field, "desc"
	}
	return ordering, "asc"
}
