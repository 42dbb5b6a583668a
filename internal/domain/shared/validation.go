package shared

import (
	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	return fieldValidator.Var(s, "required,email") == nil
}

// IsURL reports whether s is an absolute http(s) URL
func IsURL(s string) bool {
	return fieldValidator.Var(s, "required,http_url") == nil
}
