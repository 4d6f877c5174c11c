// Package auth contains domain-level types for authentication.
// It is pure and free of framework/adapter concerns.
package auth

// Identity is the authenticated caller attached to a request after its
// bearer token verifies. It is never persisted.
type Identity struct {
	UserID string
	Name   string
	// Restricted marks the shared demo account, which may read but not mutate.
	Restricted bool
}

// CanMutate reports whether the identity may create, update, or delete data.
func (i Identity) CanMutate() bool { return !i.Restricted }
