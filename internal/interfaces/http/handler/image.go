package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
)

// ImageHandler handles product image endpoints
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
	metrics      *telemetry.Metrics
}

// NewImageHandler creates a new ImageHandler. metrics may be nil.
func NewImageHandler(imageService *catalogapp.ImageService, metrics *telemetry.Metrics) *ImageHandler {
	return &ImageHandler{imageService: imageService, metrics: metrics}
}

// List godoc
// @ID           listProductImages
// @Summary      List a product's images
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {array}  catalogapp.ProductImageResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /public/products/{id}/images/ [get]
func (h *ImageHandler) List(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	images, err := h.imageService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// Upload godoc
// @ID           uploadProductImage
// @Summary      Upload a product image
// @Description  Accepts jpg, jpeg, png, gif and webp files up to 10 MB
// @Tags         admin-products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path     string true  "Product ID"
// @Param        image    formData file   true  "Image file"
// @Param        alt_text formData string false "Alternative text"
// @Success      201 {object} catalogapp.ProductImageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products/{id}/images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		h.HandleError(c, shared.NewValidationError("image", "No file was submitted."))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	image, err := h.imageService.Upload(c.Request.Context(), productID, catalogapp.UploadImageInput{
		Filename: header.Filename,
		Size:     header.Size,
		Body:     file,
		AltText:  c.PostForm("alt_text"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.ImageUploaded(c.Request.Context(), header.Size)
	h.Created(c, image)
}

// Delete godoc
// @ID           deleteProductImage
// @Summary      Delete a product image
// @Description  Removes the record and its stored file
// @Tags         admin-products
// @Param        id path int true "Image ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/product-images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	id, err := pathUint(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
