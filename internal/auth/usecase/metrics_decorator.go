package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	"github.com/allisson/numbers/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for token validation operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	token string,
) (*authDomain.Claims, error) {
	start := time.Now()
	claims, err := a.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return claims, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, token string) {
	start := time.Now()
	a.next.Logout(ctx, token)

	a.metrics.RecordOperation(ctx, "auth", "logout", "success")
	a.metrics.RecordDuration(ctx, "auth", "logout", time.Since(start), "success")
}
