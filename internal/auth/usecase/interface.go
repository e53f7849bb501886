// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
)

// UserRepository defines lookup operations over the credential table.
// The static implementation is read-only; a database-backed implementation
// can be swapped in without touching the use case.
type UserRepository interface {
	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if
	// no user with that username exists.
	GetByUsername(ctx context.Context, username string) (*authDomain.User, error)
}

// AuthUseCase defines the authentication business logic: credential
// verification, token issuance, token validation, and revocation.
type AuthUseCase interface {
	// Login verifies the presented credentials and issues a signed access
	// token carrying the user's role and capability set.
	//
	// Returns ErrInvalidCredentials for unknown usernames and wrong secrets
	// alike, so callers cannot enumerate valid usernames.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate validates a presented token and returns its verified
	// claims. The revocation blacklist is consulted before cryptographic
	// verification: a revoked token is rejected even while otherwise valid.
	//
	// Returns ErrInvalidToken for revoked, malformed, badly signed, and
	// expired tokens alike.
	Authenticate(ctx context.Context, token string) (*authDomain.Claims, error)

	// Logout revokes a token. Idempotent, and does not require the token to
	// still verify: logging out with an already-expired token succeeds.
	Logout(ctx context.Context, token string)
}
