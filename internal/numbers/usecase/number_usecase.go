package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/allisson/numbers/internal/database"
	apperrors "github.com/allisson/numbers/internal/errors"
	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// numberUseCase implements the NumberUseCase interface.
type numberUseCase struct {
	txManager  database.TxManager
	numberRepo NumberRepository
}

// Create stores a new positive integer record for the user.
func (n *numberUseCase) Create(
	ctx context.Context,
	username string,
	value int64,
) (*numbersDomain.Number, error) {
	number, err := numbersDomain.NewNumber(username, value)
	if err != nil {
		return nil, err
	}

	if err := n.numberRepo.Create(ctx, number); err != nil {
		return nil, err
	}

	return number, nil
}

// List returns all of the user's records ordered by creation time.
func (n *numberUseCase) List(
	ctx context.Context,
	username string,
) ([]*numbersDomain.Number, error) {
	return n.numberRepo.ListByUsername(ctx, username)
}

// Get returns a single record owned by the user.
func (n *numberUseCase) Get(
	ctx context.Context,
	id uuid.UUID,
	username string,
) (*numbersDomain.Number, error) {
	return n.numberRepo.Get(ctx, id, username)
}

// Update replaces the value of a record owned by the user and returns the
// updated record. The existence check and the write run in one transaction so
// a concurrent delete cannot produce a partial result.
func (n *numberUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	username string,
	value int64,
) (*numbersDomain.Number, error) {
	if value <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "value must be greater than 0")
	}

	var updated *numbersDomain.Number
	err := n.txManager.WithTx(ctx, func(txCtx context.Context) error {
		number, err := n.numberRepo.Get(txCtx, id, username)
		if err != nil {
			return err
		}

		// MySQL reports zero affected rows for a same-value update, so skip
		// the write when nothing changes.
		if number.Value != value {
			if err := n.numberRepo.UpdateValue(txCtx, id, username, value); err != nil {
				return err
			}
			number.Value = value
		}

		updated = number
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a record owned by the user.
func (n *numberUseCase) Delete(ctx context.Context, id uuid.UUID, username string) error {
	return n.numberRepo.Delete(ctx, id, username)
}

// Summarize computes aggregate statistics over the user's records.
// The count comes from the store's count operation; both reads run in one
// transaction so they observe the same record set. An empty record set
// yields count 0, sum 0, average 0 and nil min/max.
func (n *numberUseCase) Summarize(
	ctx context.Context,
	username string,
) (*numbersDomain.Statistics, error) {
	stats := &numbersDomain.Statistics{}

	err := n.txManager.WithTx(ctx, func(txCtx context.Context) error {
		count, err := n.numberRepo.Count(txCtx, username)
		if err != nil {
			return err
		}
		stats.Count = int(count)

		if count == 0 {
			return nil
		}

		numbers, err := n.numberRepo.ListByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if len(numbers) == 0 {
			return nil
		}

		minValue := numbers[0].Value
		maxValue := numbers[0].Value

		for _, number := range numbers {
			stats.Sum += number.Value
			if number.Value < minValue {
				minValue = number.Value
			}
			if number.Value > maxValue {
				maxValue = number.Value
			}
		}

		average := float64(stats.Sum) / float64(len(numbers))
		stats.Average = math.Round(average*100) / 100
		stats.Min = &minValue
		stats.Max = &maxValue

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// NewNumberUseCase creates a new number use case instance with the provided dependencies.
func NewNumberUseCase(txManager database.TxManager, numberRepo NumberRepository) NumberUseCase {
	return &numberUseCase{
		txManager:  txManager,
		numberRepo: numberRepo,
	}
}
