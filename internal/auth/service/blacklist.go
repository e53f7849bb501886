package service

import (
	"sync"
)

// memoryBlacklist implements Blacklist with an in-memory set.
//
// The set lives for the process lifetime only; there is no persistent
// revocation store. Revoke and Sweep take the write lock, IsRevoked takes the
// read lock. Entries are raw token strings and are removed opportunistically
// by Sweep once the codec no longer verifies them.
type memoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
	codec  TokenCodec
}

// Revoke adds a token to the blacklist. Idempotent.
func (b *memoryBlacklist) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
}

// IsRevoked reports whether a token has been revoked.
func (b *memoryBlacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok
}

// Sweep drops entries the codec no longer verifies and returns how many were
// removed. An expired entry is safe to drop: the codec rejects the token on
// its own, so IsRevoked does not need it.
func (b *memoryBlacklist) Sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for token := range b.tokens {
		if _, err := b.codec.Verify(token); err != nil {
			delete(b.tokens, token)
			removed++
		}
	}

	return removed
}

// NewMemoryBlacklist creates an in-memory Blacklist. The codec decides which
// entries Sweep may drop.
func NewMemoryBlacklist(codec TokenCodec) Blacklist {
	return &memoryBlacklist{
		tokens: make(map[string]struct{}),
		codec:  codec,
	}
}
