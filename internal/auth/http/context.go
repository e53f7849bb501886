// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// tokenKey is a context key type for storing the raw presented token.
type tokenKey struct{}

// WithClaims stores verified token claims in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified token claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if not set.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok
}

// WithToken stores the raw presented token in the context so the logout
// handler can revoke exactly the token that authenticated the request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken retrieves the raw presented token from the context.
// Returns (token, true) if present, or ("", false) if not set.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}
