package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Student emails must belong to the university domain.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@university\.com$`)
	// Passwords start with an uppercase letter, carry at least five letters,
	// then at least three digits.
	passwordPattern = regexp.MustCompile(`^[A-Z][a-zA-Z]{4,}\d{3,}$`)
)

// ValidEmail reports whether the email satisfies the university suffix rule.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword reports whether the password satisfies the structural rule.
func ValidPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// NewValidator returns a validator with the domain's custom tags registered:
// unimail for the email suffix rule and unipass for the password rule.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("unimail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("unipass", func(fl validator.FieldLevel) bool {
		return ValidPassword(fl.Field().String())
	})
	return v
}
