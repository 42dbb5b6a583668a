package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
)

// ProductCSVHandler handles product CSV export and import
type ProductCSVHandler struct {
	BaseHandler
	csvService *catalogapp.ProductCSVService
	metrics    *telemetry.Metrics
}

// NewProductCSVHandler creates a new ProductCSVHandler. metrics may be nil.
func NewProductCSVHandler(csvService *catalogapp.ProductCSVService, metrics *telemetry.Metrics) *ProductCSVHandler {
	return &ProductCSVHandler{csvService: csvService, metrics: metrics}
}

// Export godoc
// @ID           exportProducts
// @Summary      Export products as CSV
// @Description  Columns: id,name,sku,description,price,currency,is_active,categories
// @Tags         admin-products
// @Produce      text/csv
// @Success      200 {file} file
// @Security     SessionAuth
// @Router       /admin/products/export [get]
func (h *ProductCSVHandler) Export(c *gin.Context) {
	// buffered so a failure mid-export still yields a JSON error
	var buf bytes.Buffer
	rows, err := h.csvService.Export(c.Request.Context(), &buf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.CSVRows(c.Request.Context(), "export", rows, 0)

	filename := fmt.Sprintf("products-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Import godoc
// @ID           importProducts
// @Summary      Import products from CSV
// @Description  Upserts by SKU. Rows that fail are reported and skipped.
// @Tags         admin-products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} csvimport.Report
// @Failure      400 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Security     SessionAuth
// @Router       /admin/products/import [post]
func (h *ProductCSVHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, shared.NewValidationError("file", "No file was submitted."))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	report, err := h.csvService.Import(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.metrics.CSVRows(c.Request.Context(), "import", report.Created+report.Updated, len(report.Errors))
	h.Success(c, report)
}
