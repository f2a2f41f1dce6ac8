package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// DefaultHeaderName is the inbound header carrying an explicit tenant
// identifier, either a numeric id or a tenant code.
const DefaultHeaderName = "X-Tenant-ID"

// MaxIdentifierLength prevents DoS via very long identifiers and keeps
// tenant codes DNS-compatible.
const MaxIdentifierLength = 63

// codePattern ensures DNS-safe tenant codes: alphanumeric start, hyphens allowed.
var codePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// IsValidCode reports whether s is usable as a tenant code. Purely numeric
// values are rejected because the resolver treats them as tenant ids.
func IsValidCode(s string) bool {
	if s == "" || len(s) > MaxIdentifierLength || !codePattern.MatchString(s) {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return false
	}
	return true
}

// Resolver maps request metadata to a tenant Identity.
//
// Resolution order, first match wins:
//  1. numeric header value matching an existing tenant id
//  2. non-numeric header value looked up as a tenant code
//  3. subdomain label of the request host looked up as a tenant code
//  4. the configured default tenant
//
// Resolution is deterministic and side-effect-free: it performs lookups
// through the Provider but never mutates state, so resolving the same
// request twice yields the same Identity.
type Resolver struct {
	provider      Provider
	headerName    string
	defaultID     int64
	lenient       bool
	requireActive bool
	logger        *slog.Logger
}

// NewResolver creates a resolver backed by the given provider.
func NewResolver(provider Provider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider:      provider,
		headerName:    DefaultHeaderName,
		requireActive: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveRequest extracts the header and host from an HTTP request and
// delegates to Resolve.
func (r *Resolver) ResolveRequest(ctx context.Context, req *http.Request) (Identity, error) {
	return r.Resolve(ctx, strings.TrimSpace(req.Header.Get(r.headerName)), req.Host)
}

// Resolve produces the Identity for the given explicit header value and
// request host. An unknown explicit identifier fails with ErrTenantNotFound
// unless the resolver was built with WithLenientHeader, in which case it
// degrades to subdomain/default resolution. A lookup-store failure is
// surfaced as ErrLookupUnavailable and must be treated as fatal by callers.
func (r *Resolver) Resolve(ctx context.Context, header, host string) (Identity, error) {
	if header != "" {
		identity, err := r.resolveHeader(ctx, header)
		switch {
		case err == nil:
			return identity, nil
		case errors.Is(err, ErrTenantNotFound) && r.lenient:
			// Legacy behavior: an unknown header value degrades to
			// subdomain/default resolution instead of rejecting the request.
			r.logger.WarnContext(ctx, "unknown tenant identifier in header, falling back",
				slog.String("identifier", header))
		default:
			return Identity{}, err
		}
	}

	if code := subdomainCode(host); code != "" {
		t, err := r.lookupCode(ctx, code)
		switch {
		case err == nil:
			return Restricted(t.ID), nil
		case errors.Is(err, ErrTenantNotFound):
			// A host without a registered code is not an explicit signal;
			// fall through to the default tenant.
		default:
			return Identity{}, err
		}
	}

	if r.defaultID > 0 {
		return Restricted(r.defaultID), nil
	}
	return Identity{}, ErrTenantNotFound
}

func (r *Resolver) resolveHeader(ctx context.Context, header string) (Identity, error) {
	if len(header) > MaxIdentifierLength {
		return Identity{}, fmt.Errorf("%w: identifier too long", ErrInvalidIdentifier)
	}

	if id, err := strconv.ParseInt(header, 10, 64); err == nil {
		t, err := r.lookup(ctx, func(ctx context.Context) (*Tenant, error) {
			return r.provider.GetByID(ctx, id)
		})
		if err != nil {
			return Identity{}, err
		}
		return Restricted(t.ID), nil
	}

	if !codePattern.MatchString(header) {
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, header)
	}
	t, err := r.lookupCode(ctx, header)
	if err != nil {
		return Identity{}, err
	}
	return Restricted(t.ID), nil
}

func (r *Resolver) lookupCode(ctx context.Context, code string) (*Tenant, error) {
	return r.lookup(ctx, func(ctx context.Context) (*Tenant, error) {
		return r.provider.GetByCode(ctx, code)
	})
}

// lookup classifies provider failures: a miss stays ErrTenantNotFound, any
// other error means the lookup store is unreachable and callers must fail
// closed.
func (r *Resolver) lookup(ctx context.Context, fn func(context.Context) (*Tenant, error)) (*Tenant, error) {
	t, err := fn(ctx)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrLookupUnavailable, err)
	}
	if r.requireActive && !t.Active {
		return nil, ErrInactiveTenant
	}
	return t, nil
}

// subdomainCode derives a tenant code candidate from the request host. The
// host must have at least three dot-separated labels (code.domain.tld); the
// first label is the candidate, with a leading "www" skipped.
func subdomainCode(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}

	code := parts[0]
	if code == "www" {
		if len(parts) < 4 {
			return ""
		}
		code = parts[1]
	}

	if code == "" || len(code) > MaxIdentifierLength || !codePattern.MatchString(code) {
		return ""
	}
	return code
}
