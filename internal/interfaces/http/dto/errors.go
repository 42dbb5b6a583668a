package dto

import "net/http"

// Error codes carried in the "code" field of failure envelopes. Domain
// errors keep their own code, so these match shared.DomainError codes.
const (
	// ErrCodeInternal is used for any failure the client cannot act on
	ErrCodeInternal = "INTERNAL_ERROR"

	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeBadRequest   = "BAD_REQUEST"
	// ErrCodeUnprocessable marks request bodies that failed to bind
	ErrCodeUnprocessable = "UNPROCESSABLE_ENTITY"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeCSRFFailed   = "CSRF_FAILED"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	ErrCodeConversionFailed = "CONVERSION_FAILED"
	ErrCodeAPIKeyExhausted  = "API_KEY_EXHAUSTED"

	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeUnprocessable: http.StatusUnprocessableEntity,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeCSRFFailed:   http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeConversionFailed: http.StatusBadRequest,
	ErrCodeAPIKeyExhausted:  http.StatusServiceUnavailable,

	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ExposesMessage reports whether a code's message may be shown to clients.
// Unmapped codes are internal and get a generic message instead.
func ExposesMessage(code string) bool {
	status, ok := ErrorCodeHTTPStatus[code]
	return ok && status < http.StatusInternalServerError || code == ErrCodeAPIKeyExhausted
}
