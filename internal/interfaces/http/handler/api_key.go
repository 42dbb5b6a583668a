package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/pimify/backend/internal/application/identity"
	"github.com/pimify/backend/internal/domain/shared"
)

// APIKeyHandler handles API key management
type APIKeyHandler struct {
	BaseHandler
	apiKeyService *identityapp.APIKeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler
func NewAPIKeyHandler(apiKeyService *identityapp.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{apiKeyService: apiKeyService}
}

// List godoc
// @ID           listAPIKeys
// @Summary      List API keys
// @Description  Tokens are masked
// @Tags         admin-api-keys
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        search    query string false "Search by name"
// @Param        is_active query bool   false "Filter by active flag"
// @Success      200 {object} shared.Paginated[identityapp.APIKeyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/api-keys [get]
func (h *APIKeyHandler) List(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		h.QueryError(c, err)
		return
	}
	errs := &shared.ValidationError{}
	filter := identityapp.APIKeyListFilter{
		Page:     page,
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: boolQuery(c, "is_active", errs),
	}
	if err := errs.OrNil(); err != nil {
		h.HandleError(c, err)
		return
	}
	result, err := h.apiKeyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @ID           getAPIKey
// @Summary      Get an API key
// @Tags         admin-api-keys
// @Produce      json
// @Param        id path int true "API key ID"
// @Success      200 {object} identityapp.APIKeyResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/api-keys/{id} [get]
func (h *APIKeyHandler) Get(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	key, err := h.apiKeyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}

// Create godoc
// @ID           createAPIKey
// @Summary      Issue an API key
// @Description  The response is the only place the full token is shown
// @Tags         admin-api-keys
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateAPIKeyRequest true "Key name"
// @Success      201 {object} identityapp.CreatedAPIKeyResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse "No unique key could be generated"
// @Security     SessionAuth
// @Router       /admin/api-keys [post]
func (h *APIKeyHandler) Create(c *gin.Context) {
	var req identityapp.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	key, err := h.apiKeyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, key)
}

// Activate godoc
// @ID           activateAPIKey
// @Summary      Activate an API key
// @Tags         admin-api-keys
// @Produce      json
// @Param        id path int true "API key ID"
// @Success      200 {object} identityapp.APIKeyResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/api-keys/{id}/activate [post]
func (h *APIKeyHandler) Activate(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	key, err := h.apiKeyService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}

// Deactivate godoc
// @ID           deactivateAPIKey
// @Summary      Deactivate an API key
// @Tags         admin-api-keys
// @Produce      json
// @Param        id path int true "API key ID"
// @Success      200 {object} identityapp.APIKeyResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/api-keys/{id}/deactivate [post]
func (h *APIKeyHandler) Deactivate(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	key, err := h.apiKeyService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, key)
}

// Delete godoc
// @ID           deleteAPIKey
// @Summary      Delete an API key
// @Tags         admin-api-keys
// @Param        id path int true "API key ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/api-keys/{id} [delete]
func (h *APIKeyHandler) Delete(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.apiKeyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
