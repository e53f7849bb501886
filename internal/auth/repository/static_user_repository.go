// Package repository implements credential persistence for authentication.
//
// The default implementation is a static in-memory table seeded at startup.
// It satisfies the same UserRepository interface a database-backed
// implementation would, so swapping in a real credential backend never
// touches the authentication use case.
package repository

import (
	"context"
	"encoding/json"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	apperrors "github.com/allisson/numbers/internal/errors"
)

// StaticUserRepository holds a fixed username -> user mapping.
// The map is never mutated after construction, so lookups need no lock.
type StaticUserRepository struct {
	users map[string]*authDomain.User
}

// GetByUsername retrieves a user by username.
// Returns ErrUserNotFound if no user with that username exists.
func (s *StaticUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, authDomain.ErrUserNotFound
	}
	return user, nil
}

// NewStaticUserRepository creates a repository over the given users.
// A nil slice falls back to the built-in default table; an explicitly empty
// slice produces an empty credential table where every login fails.
func NewStaticUserRepository(users []*authDomain.User) *StaticUserRepository {
	if users == nil {
		users = defaultUsers()
	}

	table := make(map[string]*authDomain.User, len(users))
	for _, user := range users {
		table[user.Username] = user
	}

	return &StaticUserRepository{users: table}
}

// NewStaticUserRepositoryFromJSON creates a repository from a JSON array of
// users, as supplied via the AUTH_USERS environment variable.
func NewStaticUserRepositoryFromJSON(data string) (*StaticUserRepository, error) {
	var users []*authDomain.User
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse credential table")
	}
	return NewStaticUserRepository(users), nil
}

// defaultUsers returns the built-in credential table.
func defaultUsers() []*authDomain.User {
	return []*authDomain.User{
		{
			Username: "admin",
			Secret:   "1234",
			Role:     "administrator",
			Capabilities: []authDomain.Capability{
				authDomain.NumbersReadCapability,
				authDomain.NumbersWriteCapability,
				authDomain.NumbersDeleteCapability,
			},
		},
	}
}
