// Package principal carries the authenticated caller through the request
// context. Authentication itself (tokens, sessions, credential checks)
// happens upstream; this package only exposes the identity and role set
// that authorization decisions need.
package principal

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Roles  []string
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role string) bool {
	return p != nil && slices.Contains(p.Roles, role)
}

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithPrincipal binds the authenticated principal to the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the principal from the context.
// Returns nil, false for unauthenticated requests.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}
