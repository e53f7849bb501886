package domain

import (
	apperrors "github.com/allisson/numbers/internal/errors"
)

// ErrNumberNotFound indicates the record does not exist for the requesting
// user. Records owned by other users produce the same error so IDs cannot be
// probed across owners.
var ErrNumberNotFound = apperrors.Wrap(apperrors.ErrNotFound, "Number not found")
