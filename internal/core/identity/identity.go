// Package identity defines the session identity domain types and interfaces.
package identity

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when no identity is persisted.
var ErrNoIdentity = errors.New("no stored identity")

// Identity is the opaque user reference issued after OAuth completion.
// Presence of a UserID is the sole durable signal of a previously
// authenticated session. The APIKey is optional and, when present, is sent
// as a header on every backend request.
type Identity struct {
	UserID string `json:"user_id"`
	APIKey string `json:"api_key,omitempty"`
}

// IsZero returns true if the identity carries no user.
func (id Identity) IsZero() bool {
	return id.UserID == ""
}

// Store persists the identity across program runs.
type Store interface {
	// Load returns the stored identity. Returns ErrNoIdentity if none.
	Load(ctx context.Context) (Identity, error)
	// Save creates or replaces the stored identity.
	Save(ctx context.Context, id Identity) error
	// Clear removes the stored identity. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
