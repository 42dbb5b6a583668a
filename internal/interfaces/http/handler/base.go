package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/interfaces/http/dto"
	"github.com/pimify/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const genericErrorMessage = "An unexpected error occurred"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// Success sends a 200 response with data as the body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Ack sends a {"message"} acknowledgement
func (h *BaseHandler) Ack(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewAck(message))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// ServiceUnavailable sends a 503 response
func (h *BaseHandler) ServiceUnavailable(c *gin.Context, message string) {
	h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// BindError answers a request whose body or query could not be bound
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:     "Invalid request body",
		Code:      dto.ErrCodeUnprocessable,
		RequestID: getRequestID(c),
		Details:   middleware.BindingDetails(err),
	})
}

// QueryError answers a request whose query parameters failed validation
func (h *BaseHandler) QueryError(c *gin.Context, err error) {
	var validationErr *shared.ValidationError
	if !errors.As(err, &validationErr) {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:     "Invalid query parameters",
		Code:      dto.ErrCodeUnprocessable,
		RequestID: getRequestID(c),
		Details:   dto.ValidationDetails(validationErr),
	})
}

// HandleError converts service errors to HTTP responses. Messages of
// server-side failures are logged, never returned.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		h.ValidationError(c, dto.ValidationDetails(validationErr))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && dto.ExposesMessage(domainErr.Code) {
		message := domainErr.Message
		if domainErr.Code == dto.ErrCodeConversionFailed {
			message = domainErr.Error()
		}
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, message)
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("request failed", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, genericErrorMessage)
}

// pageParam reads ?page=, defaulting to 1. Pages start at 1; a page past
// the end is answered with an empty list.
func pageParam(c *gin.Context) (int, error) {
	raw := c.Query("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError("page", "A valid integer is required.")
	}
	if page < 1 {
		return 0, shared.NewValidationError("page", "Ensure this value is greater than or equal to 1.")
	}
	return page, nil
}

// pathID reads a NanoID path parameter. Malformed ids cannot exist, so
// they are reported as not found.
func pathID(c *gin.Context, name string) (string, error) {
	id := c.Param(name)
	if !shared.IsValidID(id) {
		return "", shared.ErrNotFound
	}
	return id, nil
}

// pathUint reads a numeric path parameter
func pathUint(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, shared.ErrNotFound
	}
	return uint(id), nil
}

// boolQuery reads an optional boolean query parameter
func boolQuery(c *gin.Context, name string, errs *shared.ValidationError) *bool {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		errs.Add(name, "Must be a valid boolean.")
		return nil
	}
	return &v
}

// decimalQuery reads an optional decimal query parameter
func decimalQuery(c *gin.Context, name string, errs *shared.ValidationError) *decimal.Decimal {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Add(name, "Enter a number.")
		return nil
	}
	return &v
}
