package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pimify/backend/internal/application/catalog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page   query int    false "Page number" default(1)
// @Param        search query string false "Search by name or slug"
// @Success      200 {object} shared.Paginated[catalogapp.CategoryResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse "Invalid page number"
// @Security     ApiKeyAuth
// @Router       /public/categories/ [get]
func (h *CategoryHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	result, err := h.categoryService.List(c.Request.Context(), page, strings.TrimSpace(c.Query("search")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getCategory
// @Summary      Get a category
// @Tags         admin-categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} catalogapp.CategoryResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create godoc
// @ID           createCategory
// @Summary      Create a category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} catalogapp.CategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse "Slug already in use"
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update godoc
// @ID           updateCategory
// @Summary      Update a category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "Category ID"
// @Param        request body catalogapp.UpdateCategoryRequest true "Changes"
// @Success      200 {object} catalogapp.CategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @ID           deleteCategory
// @Summary      Delete a category
// @Description  Products keep existing; only their link to the category is removed
// @Tags         admin-categories
// @Param        id path string true "Category ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
