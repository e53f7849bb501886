package domain

import (
	"github.com/allisson/numbers/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrUserNotFound indicates a user with the specified username was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrInvalidCredentials is returned for unknown usernames and wrong secrets
	// alike, so callers cannot enumerate valid usernames.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a token that is malformed, has a bad signature,
	// is expired, or has been revoked.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")
)
