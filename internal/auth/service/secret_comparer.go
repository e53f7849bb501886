package service

import (
	"crypto/subtle"
	"strings"

	"github.com/allisson/go-pwdhash"
)

// argon2idPrefix marks a stored secret as an Argon2id hash rather than a
// plaintext credential.
const argon2idPrefix = "$argon2id$"

// secretComparer implements SecretComparer. Plaintext stored secrets are
// compared in constant time; secrets stored as Argon2id hashes are verified
// with go-pwdhash. The credential table ships plaintext secrets for
// compatibility with existing deployments, but hashed entries work
// transparently.
type secretComparer struct {
	hasher *pwdhash.PasswordHasher
}

// Compare returns true if plainSecret matches storedSecret.
func (s *secretComparer) Compare(plainSecret string, storedSecret string) bool {
	if strings.HasPrefix(storedSecret, argon2idPrefix) {
		ok, err := s.hasher.Verify([]byte(plainSecret), storedSecret)
		if err != nil {
			return false
		}
		return ok
	}

	return subtle.ConstantTimeCompare([]byte(plainSecret), []byte(storedSecret)) == 1
}

// NewSecretComparer creates a SecretComparer supporting plaintext and
// Argon2id-hashed stored secrets.
func NewSecretComparer() SecretComparer {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &secretComparer{
		hasher: hasher,
	}
}
