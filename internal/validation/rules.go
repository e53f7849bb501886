// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/numbers/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PositiveInt validates that an integer value is greater than zero.
// Used for number records, which only accept values >= 1.
var PositiveInt = validation.By(func(value interface{}) error {
	invalid := validation.NewError("validation_positive_int", "must be greater than 0")

	switch v := value.(type) {
	case int:
		if v <= 0 {
			return invalid
		}
	case int64:
		if v <= 0 {
			return invalid
		}
	default:
		return validation.NewError("validation_positive_int_type", "must be an integer")
	}

	return nil
})
