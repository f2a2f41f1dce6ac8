// Package tenant implements the tenant-isolation boundary of a multi-tenant
// deployment: many independent organizations share one data store but must
// never see each other's rows.
//
// The package covers four concerns:
//
//   - Resolution: Resolver maps request metadata (the X-Tenant-ID header, the
//     request host's subdomain, a configured default) to an Identity, using a
//     Provider for tenant lookups. Resolution is deterministic and
//     side-effect-free.
//   - Propagation: the Identity rides on the request context (WithIdentity,
//     IdentityFromContext) so every downstream operation sees the same
//     binding without threading it through function signatures. Concurrent
//     requests can never observe each other's value.
//   - Boundary: Middleware wraps inbound requests, derives the privileged
//     marker from the caller's roles, resolves the identity and binds it. A
//     privileged caller is unrestricted and bypasses isolation entirely; a
//     lookup-store failure yields 503, never unrestricted access.
//   - Defense in depth: AssertAccess defends records loaded by tenant-agnostic
//     keys, failing with ErrCrossTenantAccess on a mismatch.
//
// The automatic row stamping and filtering that complete the isolation layer
// live in package enforcer, which reads the identity bound here.
//
// # Usage
//
//	provider := tenant.NewCachedProvider(store, tenant.NewInMemoryCache(), 0)
//	resolver := tenant.NewResolver(provider, tenant.WithDefaultTenant(1))
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(resolver,
//		tenant.WithSkipPaths("/health", "/docs"),
//		tenant.WithPrivilegedRole("superadmin"),
//	))
//
// Handlers read the binding through the context:
//
//	if id, ok := tenant.ActiveTenantID(r.Context()); ok {
//		// restricted to tenant id
//	}
//
// By default an unknown identifier in the header rejects the request with
// ErrTenantNotFound. WithLenientHeader restores the legacy fall-through to
// subdomain/default resolution for deployments that still depend on it.
package tenant
