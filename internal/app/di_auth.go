package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/numbers/internal/auth/http"
	authRepository "github.com/allisson/numbers/internal/auth/repository"
	authService "github.com/allisson/numbers/internal/auth/service"
	authUseCase "github.com/allisson/numbers/internal/auth/usecase"
)

// UserRepository returns the credential table repository.
// An AUTH_USERS JSON override replaces the built-in default table.
func (c *Container) UserRepository() (authUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		userRepo, err := c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		c.userRepo = userRepo
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// TokenCodec returns the access token codec.
func (c *Container) TokenCodec() authService.TokenCodec {
	c.tokenCodecInit.Do(func() {
		c.tokenCodec = authService.NewJWTCodec(c.config.JWTSecret, c.config.JWTExpiration)
	})
	return c.tokenCodec
}

// SecretComparer returns the secret comparison service.
func (c *Container) SecretComparer() authService.SecretComparer {
	c.secretComparerInit.Do(func() {
		c.secretComparer = authService.NewSecretComparer()
	})
	return c.secretComparer
}

// Blacklist returns the in-memory token revocation blacklist.
func (c *Container) Blacklist() authService.Blacklist {
	c.blacklistInit.Do(func() {
		c.blacklist = authService.NewMemoryBlacklist(c.TokenCodec())
	})
	return c.blacklist
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	c.authUseCaseInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the HTTP handler for login and logout operations.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	c.authHandlerInit.Do(func() {
		handler, err := c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
			return
		}
		c.authHandler = handler
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// LoginRateLimiter returns the per-IP rate limiting middleware for the login
// endpoint, or nil when rate limiting is disabled.
func (c *Container) LoginRateLimiter() gin.HandlerFunc {
	if !c.config.RateLimitLoginEnabled {
		return nil
	}
	return authHTTP.LoginRateLimitMiddleware(
		c.config.RateLimitLoginRequestsPerSec,
		c.config.RateLimitLoginBurst,
		c.Logger(),
	)
}

// initUserRepository creates the credential table repository.
func (c *Container) initUserRepository() (authUseCase.UserRepository, error) {
	if c.config.AuthUsers != "" {
		userRepo, err := authRepository.NewStaticUserRepositoryFromJSON(c.config.AuthUsers)
		if err != nil {
			return nil, fmt.Errorf("failed to parse AUTH_USERS: %w", err)
		}
		return userRepo, nil
	}
	return authRepository.NewStaticUserRepository(nil), nil
}

// initAuthUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(
		userRepo,
		c.TokenCodec(),
		c.SecretComparer(),
		c.Blacklist(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthHandler creates the auth HTTP handler with all its dependencies.
func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}

	return authHTTP.NewAuthHandler(useCase, c.Logger()), nil
}
