package tenant

import (
	"context"
	"log/slog"
	"strconv"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithIdentity binds the resolved identity to the request context. The
// binding lives exactly as long as the request context, so one request can
// never observe another's value under goroutine or connection reuse.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFromContext retrieves the identity bound by the boundary
// middleware. Returns false if the middleware never ran for this request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(Identity)
	return identity, ok
}

// ActiveTenantID returns the tenant id a restricted request is bound to.
// Returns false for unrestricted (privileged) requests and for contexts
// without an identity.
func ActiveTenantID(ctx context.Context) (int64, bool) {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return 0, false
	}
	return identity.TenantID()
}

// MustIdentityFromContext retrieves the identity or panics. Use this only in
// handlers that are always mounted behind the boundary middleware.
func MustIdentityFromContext(ctx context.Context) Identity {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		panic("tenant: no identity in context")
	}
	return identity
}

// LoggerExtractor returns a ContextExtractor for the logger that enriches
// log records with the active tenant id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ActiveTenantID(ctx); ok {
			return slog.String("tenant_id", strconv.FormatInt(id, 10)), true
		}
		return slog.Attr{}, false
	}
}
