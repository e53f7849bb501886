// Package domain defines authentication and authorization domain models.
//
// It provides credential-based authentication with capability-based
// authorization. Users authenticate with a username and secret and receive a
// signed access token whose claims carry the user's role and capability set.
// Capabilities are frozen into the token at issuance time: later changes to
// the credential table never affect already-issued tokens.
package domain

import (
	"slices"
	"time"
)

// Capability defines the operations a token holder may perform.
type Capability string

const (
	// NumbersReadCapability allows listing and reading number records and statistics.
	NumbersReadCapability Capability = "numbers:read"

	// NumbersWriteCapability allows creating and updating number records.
	NumbersWriteCapability Capability = "numbers:write"

	// NumbersDeleteCapability allows removing number records.
	NumbersDeleteCapability Capability = "numbers:delete"
)

// User represents an entry in the credential table.
// The table is immutable for the process lifetime.
type User struct {
	Username     string       `json:"username"`
	Secret       string       `json:"secret"` //nolint:gosec // static credential table entry
	Role         string       `json:"role"`
	Capabilities []Capability `json:"capabilities"`
}

// Claims is the verified identity carried by an access token.
type Claims struct {
	Subject      string
	Role         string
	Capabilities []Capability
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// HasCapability reports whether the claims include the given capability.
// The check is against the capability set frozen at token issuance.
func (c *Claims) HasCapability(capability Capability) bool {
	if capability == "" {
		return false
	}
	return slices.Contains(c.Capabilities, capability)
}

// LoginInput contains the credentials presented to obtain an access token.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
}
