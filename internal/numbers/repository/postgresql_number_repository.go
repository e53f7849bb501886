// Package repository implements data persistence for number records.
// Repositories support both PostgreSQL and MySQL. All queries are scoped by
// owner username so one user can never see or touch another user's records.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/numbers/internal/database"
	apperrors "github.com/allisson/numbers/internal/errors"
	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// storageFailure tags a driver error so handlers can map it to a 500 response
// instead of treating it as missing data.
func storageFailure(err error, message string) error {
	return fmt.Errorf("%s: %v: %w", message, err, apperrors.ErrStorageFailure)
}

// PostgreSQLNumberRepository implements Number persistence for PostgreSQL databases.
type PostgreSQLNumberRepository struct {
	db *sql.DB
}

// Create inserts a new number record into the PostgreSQL database.
func (p *PostgreSQLNumberRepository) Create(
	ctx context.Context,
	number *numbersDomain.Number,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO numbers (id, username, value, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		number.ID,
		number.Username,
		number.Value,
		number.CreatedAt,
	)
	if err != nil {
		return storageFailure(err, "failed to create number")
	}

	return nil
}

// ListByUsername retrieves all records owned by a user ordered by creation
// time. Records with a missing created_at sort before everything else.
func (p *PostgreSQLNumberRepository) ListByUsername(
	ctx context.Context,
	username string,
) ([]*numbersDomain.Number, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, value, COALESCE(created_at, to_timestamp(0)) AS created_at
			  FROM numbers
			  WHERE username = $1
			  ORDER BY COALESCE(created_at, to_timestamp(0)) ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, username)
	if err != nil {
		return nil, storageFailure(err, "failed to list numbers")
	}
	defer func() {
		_ = rows.Close()
	}()

	numbers := []*numbersDomain.Number{}
	for rows.Next() {
		var number numbersDomain.Number
		err := rows.Scan(
			&number.ID,
			&number.Username,
			&number.Value,
			&number.CreatedAt,
		)
		if err != nil {
			return nil, storageFailure(err, "failed to scan number")
		}
		numbers = append(numbers, &number)
	}

	if err := rows.Err(); err != nil {
		return nil, storageFailure(err, "failed to iterate numbers")
	}

	return numbers, nil
}

// Get retrieves a single record by ID scoped to its owner. Returns
// ErrNumberNotFound both when the ID does not exist and when it belongs to
// another user.
func (p *PostgreSQLNumberRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	username string,
) (*numbersDomain.Number, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, value, COALESCE(created_at, to_timestamp(0)) AS created_at
			  FROM numbers
			  WHERE id = $1 AND username = $2
			  LIMIT 1`

	var number numbersDomain.Number
	err := querier.QueryRowContext(ctx, query, id, username).Scan(
		&number.ID,
		&number.Username,
		&number.Value,
		&number.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, numbersDomain.ErrNumberNotFound
		}
		return nil, storageFailure(err, "failed to get number")
	}

	return &number, nil
}

// UpdateValue replaces the value of a record scoped to its owner. Returns
// ErrNumberNotFound when no owned record matches the ID.
func (p *PostgreSQLNumberRepository) UpdateValue(
	ctx context.Context,
	id uuid.UUID,
	username string,
	value int64,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE numbers
			  SET value = $1
			  WHERE id = $2 AND username = $3`

	result, err := querier.ExecContext(ctx, query, value, id, username)
	if err != nil {
		return storageFailure(err, "failed to update number")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageFailure(err, "failed to read update result")
	}
	if affected == 0 {
		return numbersDomain.ErrNumberNotFound
	}

	return nil
}

// Delete removes a record scoped to its owner. Returns ErrNumberNotFound when
// no owned record matches the ID.
func (p *PostgreSQLNumberRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
	username string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM numbers
			  WHERE id = $1 AND username = $2`

	result, err := querier.ExecContext(ctx, query, id, username)
	if err != nil {
		return storageFailure(err, "failed to delete number")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageFailure(err, "failed to read delete result")
	}
	if affected == 0 {
		return numbersDomain.ErrNumberNotFound
	}

	return nil
}

// Count returns the number of records owned by a user.
func (p *PostgreSQLNumberRepository) Count(ctx context.Context, username string) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM numbers WHERE username = $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return 0, storageFailure(err, "failed to count numbers")
	}

	return count, nil
}

// NewPostgreSQLNumberRepository creates a new PostgreSQL Number repository instance.
func NewPostgreSQLNumberRepository(db *sql.DB) *PostgreSQLNumberRepository {
	return &PostgreSQLNumberRepository{db: db}
}
