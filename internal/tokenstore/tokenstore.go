// Package tokenstore remembers revoked access tokens until they expire.
package tokenstore

import (
	"context"
	"sync"
	"time"
)

// Store records revoked token IDs (the JWT "jti" claim).
type Store interface {
	// Revoke marks jti as revoked for ttl, the remaining lifetime of the token.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Memory is an in-process Store. Expired entries are dropped lazily.
type Memory struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{revoked: make(map[string]time.Time), now: time.Now}
}

func (m *Memory) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[jti] = now.Add(ttl)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.revoked, jti)
		return false, nil
	}
	return true, nil
}
