package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	apperrors "github.com/allisson/numbers/internal/errors"
)

// jwtCodec implements TokenCodec with HS256-signed JWTs.
type jwtCodec struct {
	secret []byte
	ttl    time.Duration
}

// tokenClaims is the JWT payload. Capabilities travel in a private
// "permissions" claim alongside the registered sub/iat/exp claims.
type tokenClaims struct {
	Role        string                  `json:"role"`
	Permissions []authDomain.Capability `json:"permissions"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the given user with the configured TTL.
func (j *jwtCodec) Issue(user *authDomain.User) (string, error) {
	now := time.Now().UTC()

	claims := tokenClaims{
		Role:        user.Role,
		Permissions: user.Capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify validates the token signature and expiry and returns the claims.
// All failure modes collapse into ErrInvalidToken.
func (j *jwtCodec) Verify(tokenString string) (*authDomain.Claims, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, authDomain.ErrInvalidToken
			}
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, authDomain.ErrInvalidToken
	}

	verified := &authDomain.Claims{
		Subject:      claims.Subject,
		Role:         claims.Role,
		Capabilities: claims.Permissions,
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}

	return verified, nil
}

// NewJWTCodec creates a TokenCodec that signs tokens with HS256 using the
// given secret and token lifetime.
func NewJWTCodec(secret string, ttl time.Duration) TokenCodec {
	return &jwtCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}
