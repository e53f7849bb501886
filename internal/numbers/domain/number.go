// Package domain defines the core domain models for per-user number records.
// Every record is owned by the user that created it; all reads and writes are
// scoped to that owner.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/numbers/internal/errors"
)

// Number represents a single positive integer record owned by a user.
type Number struct {
	// ID is the unique identifier for this record.
	ID uuid.UUID
	// Username is the owner of the record; all access is scoped to it.
	Username string
	// Value is the stored positive integer.
	Value int64
	// CreatedAt is the UTC timestamp when the record was created.
	CreatedAt time.Time
}

// NewNumber builds a record for the given owner and value.
// The value must be strictly positive; zero and negatives are rejected even
// if upstream validation is bypassed.
func NewNumber(username string, value int64) (*Number, error) {
	if value <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "value must be greater than 0")
	}

	return &Number{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  username,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Statistics is an aggregate summary over a user's records.
type Statistics struct {
	// Count is the number of records.
	Count int
	// Sum is the total of all values.
	Sum int64
	// Average is the arithmetic mean rounded to two decimal places.
	// Zero when the user has no records.
	Average float64
	// Min is the smallest value, or nil when the user has no records.
	Min *int64
	// Max is the largest value, or nil when the user has no records.
	Max *int64
}
