package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when an explicitly supplied identifier
	// does not correspond to any known tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrLookupUnavailable is returned when the tenant lookup store cannot be
	// reached. Callers must fail closed on this error.
	ErrLookupUnavailable = errors.New("tenant lookup unavailable")

	// ErrNoIdentityInContext is returned when request code runs outside the
	// boundary middleware and no identity was ever bound.
	ErrNoIdentityInContext = errors.New("no tenant identity in context")

	// ErrCrossTenantAccess is returned by AssertAccess when a restricted
	// caller holds a record owned by another tenant.
	ErrCrossTenantAccess = errors.New("cross-tenant access denied")

	// ErrInactiveTenant is returned when resolution matches a deactivated tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")
)
