package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/pimify/backend/internal/application/identity"
)

// OrganizationHandler handles the organization singleton
type OrganizationHandler struct {
	BaseHandler
	organizationService *identityapp.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler
func NewOrganizationHandler(organizationService *identityapp.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// GetPublic godoc
// @ID           getOrganization
// @Summary      Get organization details
// @Tags         organization
// @Produce      json
// @Success      200 {object} identityapp.OrganizationDetail
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Organization details not found"
// @Security     ApiKeyAuth
// @Router       /public/organization [get]
func (h *OrganizationHandler) GetPublic(c *gin.Context) {
	org, err := h.organizationService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, identityapp.ToOrganizationDetail(org))
}

// Get godoc
// @ID           getAdminOrganization
// @Summary      Get the organization with its API key link
// @Tags         admin-organization
// @Produce      json
// @Success      200 {object} identityapp.OrganizationResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/organization [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	org, err := h.organizationService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, identityapp.ToOrganizationResponse(org))
}

// Update godoc
// @ID           updateOrganization
// @Summary      Create or replace the organization
// @Tags         admin-organization
// @Accept       json
// @Produce      json
// @Param        request body identityapp.OrganizationRequest true "Organization"
// @Success      200 {object} identityapp.OrganizationResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Unknown API key"
// @Failure      422 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/organization [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req identityapp.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	org, err := h.organizationService.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}
