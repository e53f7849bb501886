// Package service provides technical services for authentication operations:
// access token encoding/verification, secret comparison, and the in-memory
// token revocation blacklist.
package service

import (
	authDomain "github.com/allisson/numbers/internal/auth/domain"
)

// TokenCodec creates and verifies signed, time-bounded access tokens.
type TokenCodec interface {
	// Issue creates a signed token embedding the user's identity, role, and
	// capability set, with issued-at and expires-at timestamps. The capability
	// set is frozen into the token; later credential table changes do not
	// affect tokens already issued.
	Issue(user *authDomain.User) (string, error)

	// Verify validates a token's signature and expiry and returns its claims.
	// Malformed, badly signed, and expired tokens all return ErrInvalidToken.
	Verify(token string) (*authDomain.Claims, error)
}

// SecretComparer compares a presented secret against a stored one.
type SecretComparer interface {
	// Compare returns true if the presented plain secret matches the stored
	// secret. The comparison is constant-time.
	Compare(plainSecret string, storedSecret string) bool
}

// Blacklist tracks revoked tokens for the process lifetime.
// A blacklisted token is rejected even while cryptographically valid.
type Blacklist interface {
	// Revoke adds a token to the blacklist. Revoking twice is a no-op.
	Revoke(token string)

	// IsRevoked reports whether a token has been revoked.
	IsRevoked(token string) bool

	// Sweep removes entries that no longer verify (expired tokens). It only
	// bounds memory growth; IsRevoked stays correct without it because the
	// codec rejects expired tokens on its own.
	Sweep() int
}
