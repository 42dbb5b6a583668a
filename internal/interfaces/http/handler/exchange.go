package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	exchangeapp "github.com/pimify/backend/internal/application/exchange"
	"github.com/pimify/backend/internal/domain/shared"
)

// ExchangeHandler handles exchange rate and price conversion endpoints
type ExchangeHandler struct {
	BaseHandler
	rateService *exchangeapp.RateService
}

// NewExchangeHandler creates a new ExchangeHandler
func NewExchangeHandler(rateService *exchangeapp.RateService) *ExchangeHandler {
	return &ExchangeHandler{rateService: rateService}
}

// GetRate godoc
// @ID           getExchangeRate
// @Summary      Get an exchange rate
// @Description  Units of to_currency bought by one unit of from_currency
// @Tags         exchange
// @Produce      json
// @Param        to_currency   query string true  "Target currency" example(EUR)
// @Param        from_currency query string false "Source currency" default(USD)
// @Success      200 {object} exchangeapp.ExchangeRateResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse "Exchange rate for X not found."
// @Security     ApiKeyAuth
// @Router       /public/exchange-rate/ [get]
func (h *ExchangeHandler) GetRate(c *gin.Context) {
	to := strings.ToUpper(strings.TrimSpace(c.Query("to_currency")))
	if to == "" {
		h.HandleError(c, shared.NewValidationError("to_currency", "This field is required."))
		return
	}
	from := strings.ToUpper(strings.TrimSpace(c.Query("from_currency")))

	rate, err := h.rateService.GetRate(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// ConvertProductPrice godoc
// @ID           convertProductPrice
// @Summary      Convert a product's price
// @Tags         exchange
// @Produce      json
// @Param        product_sku query string true "Product SKU"
// @Param        to_currency query string true "Target currency" example(EUR)
// @Success      200 {object} exchangeapp.ConvertedPriceResponse
// @Failure      400 {object} dto.ErrorResponse "Conversion failed: reason"
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /public/convert-product-price/ [get]
func (h *ExchangeHandler) ConvertProductPrice(c *gin.Context) {
	sku := strings.TrimSpace(c.Query("product_sku"))
	to := strings.ToUpper(strings.TrimSpace(c.Query("to_currency")))

	errs := &shared.ValidationError{}
	if sku == "" {
		errs.Add("product_sku", "This field is required.")
	}
	if to == "" {
		errs.Add("to_currency", "This field is required.")
	}
	if err := errs.OrNil(); err != nil {
		h.HandleError(c, err)
		return
	}

	converted, err := h.rateService.ConvertProductPrice(c.Request.Context(), sku, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, converted)
}

// ListRates godoc
// @ID           listExchangeRates
// @Summary      List stored exchange rates
// @Description  Rates are stored relative to the base currency
// @Tags         admin-exchange
// @Produce      json
// @Success      200 {array} exchangeapp.RateResponse
// @Security     SessionAuth
// @Router       /admin/exchange-rates [get]
func (h *ExchangeHandler) ListRates(c *gin.Context) {
	rates, err := h.rateService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}
