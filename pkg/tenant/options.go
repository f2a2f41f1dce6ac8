package tenant

import (
	"log/slog"
	"net/http"
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHeaderName overrides the header carrying the explicit tenant
// identifier. Defaults to DefaultHeaderName.
func WithHeaderName(name string) ResolverOption {
	return func(r *Resolver) {
		if name != "" {
			r.headerName = name
		}
	}
}

// WithDefaultTenant sets the fallback tenant id used when no other signal
// resolves a tenant. Intended for single-tenant and dev deployments; a zero
// value disables the fallback and unresolvable requests fail with
// ErrTenantNotFound.
func WithDefaultTenant(id int64) ResolverOption {
	return func(r *Resolver) {
		r.defaultID = id
	}
}

// WithLenientHeader restores the legacy behavior where an unknown tenant
// identifier in the header degrades to subdomain/default resolution instead
// of rejecting the request. Enable only when backward compatibility with
// existing clients requires it; degradations are logged.
func WithLenientHeader() ResolverOption {
	return func(r *Resolver) {
		r.lenient = true
	}
}

// WithAllowInactive lets resolution match deactivated tenants.
func WithAllowInactive() ResolverOption {
	return func(r *Resolver) {
		r.requireActive = false
	}
}

// WithResolverLogger sets the logger used for degradation warnings.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultPrivilegedRole is the role name granting cross-tenant access when
// no role is configured explicitly.
const DefaultPrivilegedRole = "superadmin"

// middlewareConfig holds boundary middleware configuration.
type middlewareConfig struct {
	skipPaths      []string
	privilegedRole string
	roles          func(r *http.Request) []string
	errorHandler   ErrorHandler
	logger         *slog.Logger
}

// Option configures the boundary middleware.
type Option func(*middlewareConfig)

// WithSkipPaths sets path prefixes (health checks, docs) that bypass the
// middleware entirely.
func WithSkipPaths(paths ...string) Option {
	return func(c *middlewareConfig) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithPrivilegedRole sets the role name that bypasses tenant isolation.
// The name is deployment configuration, not business logic.
func WithPrivilegedRole(role string) Option {
	return func(c *middlewareConfig) {
		if role != "" {
			c.privilegedRole = role
		}
	}
}

// WithRoleSource overrides how the caller's role set is read from the
// request. Defaults to the principal bound by the auth layer.
func WithRoleSource(fn func(r *http.Request) []string) Option {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.roles = fn
		}
	}
}

// WithErrorHandler sets a custom error handler for resolution failures.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *middlewareConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
