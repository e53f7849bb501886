package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/numbers/internal/metrics"
	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// numberUseCaseWithMetrics decorates NumberUseCase with metrics instrumentation.
type numberUseCaseWithMetrics struct {
	next    NumberUseCase
	metrics metrics.BusinessMetrics
}

// NewNumberUseCaseWithMetrics wraps a NumberUseCase with metrics recording.
func NewNumberUseCaseWithMetrics(useCase NumberUseCase, m metrics.BusinessMetrics) NumberUseCase {
	return &numberUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (n *numberUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	n.metrics.RecordOperation(ctx, "numbers", operation, status)
	n.metrics.RecordDuration(ctx, "numbers", operation, time.Since(start), status)
}

// Create records metrics for record creation operations.
func (n *numberUseCaseWithMetrics) Create(
	ctx context.Context,
	username string,
	value int64,
) (*numbersDomain.Number, error) {
	start := time.Now()
	number, err := n.next.Create(ctx, username, value)
	n.record(ctx, "create", start, err)
	return number, err
}

// List records metrics for list operations.
func (n *numberUseCaseWithMetrics) List(
	ctx context.Context,
	username string,
) ([]*numbersDomain.Number, error) {
	start := time.Now()
	numbers, err := n.next.List(ctx, username)
	n.record(ctx, "list", start, err)
	return numbers, err
}

// Get records metrics for single-record retrieval operations.
func (n *numberUseCaseWithMetrics) Get(
	ctx context.Context,
	id uuid.UUID,
	username string,
) (*numbersDomain.Number, error) {
	start := time.Now()
	number, err := n.next.Get(ctx, id, username)
	n.record(ctx, "get", start, err)
	return number, err
}

// Update records metrics for update operations.
func (n *numberUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	username string,
	value int64,
) (*numbersDomain.Number, error) {
	start := time.Now()
	number, err := n.next.Update(ctx, id, username, value)
	n.record(ctx, "update", start, err)
	return number, err
}

// Delete records metrics for delete operations.
func (n *numberUseCaseWithMetrics) Delete(
	ctx context.Context,
	id uuid.UUID,
	username string,
) error {
	start := time.Now()
	err := n.next.Delete(ctx, id, username)
	n.record(ctx, "delete", start, err)
	return err
}

// Summarize records metrics for statistics operations.
func (n *numberUseCaseWithMetrics) Summarize(
	ctx context.Context,
	username string,
) (*numbersDomain.Statistics, error) {
	start := time.Now()
	stats, err := n.next.Summarize(ctx, username)
	n.record(ctx, "summarize", start, err)
	return stats, err
}
