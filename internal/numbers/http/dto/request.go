// Package dto provides data transfer objects for number record HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/numbers/internal/validation"
)

// NumberRequest is the payload for creating or updating a record.
type NumberRequest struct {
	Value int64 `json:"value"`
}

// Validate checks if the number request is valid.
func (r *NumberRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			customValidation.PositiveInt,
		),
	)
}
