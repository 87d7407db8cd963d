// Package validator configures go-playground/validator for request structs.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailRegex requires one "@" followed by a dotted domain, with no spaces.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("email_format", validateEmailFormat)
	return v
}
