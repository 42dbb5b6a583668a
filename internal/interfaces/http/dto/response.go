package dto

import (
	"sort"

	"github.com/pimify/backend/internal/domain/shared"
)

// ErrorResponse is the failure envelope
// @Description Failure envelope
type ErrorResponse struct {
	Error     string             `json:"error" example:"Resource not found"`
	Code      string             `json:"code,omitempty" example:"NOT_FOUND"`
	RequestID string             `json:"request_id,omitempty" example:"4f6c1c0e2a9b4d7e9f0a1b2c3d4e5f60"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail is one failing field
type ValidationDetail struct {
	Field   string `json:"field" example:"name"`
	Message string `json:"message" example:"Name is required"`
}

// AckResponse acknowledges an action that returns no resource
// @Description Acknowledgement
type AckResponse struct {
	Message string `json:"message" example:"success"`
}

// PageResponse documents the paginated list envelope. Handlers return
// shared.Paginated directly, which serialises to the same shape.
// @Description Paginated list
type PageResponse struct {
	Items      []any `json:"items"`
	Count      int64 `json:"count" example:"42"`
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"page_size" example:"20"`
	TotalPages int   `json:"total_pages" example:"3"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request id
func NewErrorResponseWithRequestID(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code, RequestID: requestID}
}

// NewValidationErrorResponse creates a validation failure with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Code:      ErrCodeValidation,
		RequestID: requestID,
		Details:   details,
	}
}

// ValidationDetails flattens a domain validation error, ordered by field
func ValidationDetails(err *shared.ValidationError) []ValidationDetail {
	if err == nil {
		return nil
	}
	details := make([]ValidationDetail, 0, len(err.Fields))
	for field, msg := range err.Fields {
		details = append(details, ValidationDetail{Field: field, Message: msg})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })
	return details
}

// NewAck creates an acknowledgement
func NewAck(message string) AckResponse {
	return AckResponse{Message: message}
}
