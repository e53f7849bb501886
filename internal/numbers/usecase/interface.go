// Package usecase implements business logic for per-user number records.
// Use cases orchestrate repositories to provide owner-scoped CRUD and
// aggregate statistics.
package usecase

import (
	"context"

	"github.com/google/uuid"

	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// NumberRepository defines the interface for Number persistence operations.
// All operations are scoped by owner username.
type NumberRepository interface {
	Create(ctx context.Context, number *numbersDomain.Number) error
	ListByUsername(ctx context.Context, username string) ([]*numbersDomain.Number, error)
	Get(ctx context.Context, id uuid.UUID, username string) (*numbersDomain.Number, error)
	UpdateValue(ctx context.Context, id uuid.UUID, username string, value int64) error
	Delete(ctx context.Context, id uuid.UUID, username string) error
	Count(ctx context.Context, username string) (int64, error)
}

// NumberUseCase defines the interface for number record business logic.
type NumberUseCase interface {
	// Create stores a new positive integer record for the user.
	Create(ctx context.Context, username string, value int64) (*numbersDomain.Number, error)
	// List returns all of the user's records ordered by creation time.
	List(ctx context.Context, username string) ([]*numbersDomain.Number, error)
	// Get returns a single record owned by the user.
	Get(ctx context.Context, id uuid.UUID, username string) (*numbersDomain.Number, error)
	// Update replaces the value of a record owned by the user and returns the
	// updated record.
	Update(ctx context.Context, id uuid.UUID, username string, value int64) (*numbersDomain.Number, error)
	// Delete removes a record owned by the user.
	Delete(ctx context.Context, id uuid.UUID, username string) error
	// Summarize computes aggregate statistics over the user's records.
	Summarize(ctx context.Context, username string) (*numbersDomain.Statistics, error)
}
