package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/classlane/classlane/pkg/principal"
)

// Middleware creates the tenant boundary middleware. It wraps every inbound
// request except the configured skip paths and:
//
//  1. derives the privileged marker from the caller's role set;
//  2. resolves the tenant identity (privileged callers are unrestricted and
//     bypass isolation entirely, to support cross-tenant operations);
//  3. binds the identity to the request context, which both business code
//     and the data-access enforcer read for the remainder of the request.
//
// Resolution never fails for a well-formed request; if the lookup store is
// unreachable the middleware responds 503 rather than silently granting
// unrestricted access (fail closed). The identity binding dies with the
// request context, so no cleanup can be skipped by a panicking handler.
func Middleware(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		privilegedRole: DefaultPrivilegedRole,
		roles:          rolesFromPrincipal,
		errorHandler:   defaultErrorHandler,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if slices.Contains(cfg.roles(r), cfg.privilegedRole) {
				ctx := WithIdentity(r.Context(), Unrestricted())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			identity, err := resolver.ResolveRequest(r.Context(), r)
			if err != nil {
				if errors.Is(err, ErrLookupUnavailable) {
					cfg.logger.ErrorContext(r.Context(), "tenant lookup unavailable",
						slog.String("error", err.Error()))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant ensures a restricted identity is present in the context.
// Use it on routes that must never run unbound, even for operators.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok || !identity.IsRestricted() {
				errorHandler(w, r, ErrNoIdentityInContext)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rolesFromPrincipal(r *http.Request) []string {
	if p, ok := principal.FromContext(r.Context()); ok {
		return p.Roles
	}
	return nil
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrLookupUnavailable):
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	case errors.Is(err, ErrInvalidIdentifier):
		http.Error(w, "Invalid tenant identifier", http.StatusBadRequest)
	case errors.Is(err, ErrNoIdentityInContext):
		http.Error(w, "Tenant required", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
