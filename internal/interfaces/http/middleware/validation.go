package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pimify/backend/internal/interfaces/http/dto"
)

// SetupValidator makes binding errors report json field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// BindingDetails turns a binding failure into field details. Errors that
// are not validator errors, such as malformed JSON, yield a single
// "body" detail.
func BindingDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
		return details
	}
	return []dto.ValidationDetail{{Field: "body", Message: "Malformed request body"}}
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "datetime":
		return "Date has wrong format. Use YYYY-MM-DD."
	case "min":
		if e.Kind() == reflect.String {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "len":
		return "Ensure this field has exactly " + e.Param() + " characters."
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "lte":
		return "Ensure this value is less than or equal to " + e.Param() + "."
	default:
		return "Invalid value."
	}
}
