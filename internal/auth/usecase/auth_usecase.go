// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	authService "github.com/allisson/numbers/internal/auth/service"
)

// authUseCase implements AuthUseCase over a credential repository, a token
// codec, and the revocation blacklist.
type authUseCase struct {
	userRepo       UserRepository
	tokenCodec     authService.TokenCodec
	secretComparer authService.SecretComparer
	blacklist      authService.Blacklist
}

// Login verifies credentials and issues a new access token.
//
// An absent username is indistinguishable from a wrong secret: both return
// ErrInvalidCredentials. The issued token freezes the user's role and
// capability set at issuance time.
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := a.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, authDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.secretComparer.Compare(input.Password, user.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, err := a.tokenCodec.Issue(user)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Authenticate validates a presented token and returns its claims.
//
// The blacklist check runs first: revocation must win even for a token that
// would otherwise verify. Only then is the signature/expiry checked.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.Claims, error) {
	if a.blacklist.IsRevoked(token) {
		return nil, authDomain.ErrInvalidToken
	}

	claims, err := a.tokenCodec.Verify(token)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return claims, nil
}

// Logout adds the token to the revocation blacklist. The token is not
// verified first: revoking an expired or garbage token is a harmless no-op
// and keeps logout idempotent.
func (a *authUseCase) Logout(ctx context.Context, token string) {
	a.blacklist.Revoke(token)
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	tokenCodec authService.TokenCodec,
	secretComparer authService.SecretComparer,
	blacklist authService.Blacklist,
) AuthUseCase {
	return &authUseCase{
		userRepo:       userRepo,
		tokenCodec:     tokenCodec,
		secretComparer: secretComparer,
		blacklist:      blacklist,
	}
}
