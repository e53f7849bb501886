package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/numbers/internal/database"
	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
)

// MySQLNumberRepository implements Number persistence for MySQL databases.
type MySQLNumberRepository struct {
	db *sql.DB
}

// Create inserts a new number record into the MySQL database.
func (m *MySQLNumberRepository) Create(
	ctx context.Context,
	number *numbersDomain.Number,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO numbers (id, username, value, created_at)
			  VALUES (?, ?, ?, ?)`

	id, err := number.ID.MarshalBinary()
	if err != nil {
		return storageFailure(err, "failed to marshal number id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLNumberRepository) ListByUsername(
	ctx context.Context,
	username string,
) ([]*numbersDomain.Number, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, value, COALESCE(created_at, FROM_UNIXTIME(0)) AS created_at
			  FROM numbers
			  WHERE username = ?
			  ORDER BY COALESCE(created_at, FROM_UNIXTIME(0)) ASC, id ASC`

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
		var id []byte

		err := rows.Scan(
			&id,
			&number.Username,
			&number.Value,
			&number.CreatedAt,
		)
		if err != nil {
			return nil, storageFailure(err, "failed to scan number")
		}

		if err := number.ID.UnmarshalBinary(id); err != nil {
			return nil, storageFailure(err, "failed to unmarshal number id")
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
func (m *MySQLNumberRepository) Get(
	ctx context.Context,
	id uuid.UUID,
	username string,
) (*numbersDomain.Number, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, value, COALESCE(created_at, FROM_UNIXTIME(0)) AS created_at
			  FROM numbers
			  WHERE id = ? AND username = ?
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, storageFailure(err, "failed to marshal number id")
	}

	var number numbersDomain.Number
	var scannedID []byte

	err = querier.QueryRowContext(ctx, query, idValue, username).Scan(
		&scannedID,
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

	if err := number.ID.UnmarshalBinary(scannedID); err != nil {
		return nil, storageFailure(err, "failed to unmarshal number id")
	}

	return &number, nil
}

// UpdateValue replaces the value of a record scoped to its owner. Returns
// ErrNumberNotFound when no owned record matches the ID.
func (m *MySQLNumberRepository) UpdateValue(
	ctx context.Context,
	id uuid.UUID,
	username string,
	value int64,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE numbers
			  SET value = ?
			  WHERE id = ? AND username = ?`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return storageFailure(err, "failed to marshal number id")
	}

	result, err := querier.ExecContext(ctx, query, value, idValue, username)
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
func (m *MySQLNumberRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
	username string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM numbers
			  WHERE id = ? AND username = ?`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return storageFailure(err, "failed to marshal number id")
	}

	result, err := querier.ExecContext(ctx, query, idValue, username)
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
func (m *MySQLNumberRepository) Count(ctx context.Context, username string) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM numbers WHERE username = ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return 0, storageFailure(err, "failed to count numbers")
	}

	return count, nil
}

// NewMySQLNumberRepository creates a new MySQL Number repository instance.
func NewMySQLNumberRepository(db *sql.DB) *MySQLNumberRepository {
	return &MySQLNumberRepository{db: db}
}
