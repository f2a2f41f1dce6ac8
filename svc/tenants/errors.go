package tenants

import "errors"

var (
	// ErrCodeTaken is returned when a tenant code is already in use.
	ErrCodeTaken = errors.New("tenant code already taken")

	// ErrInvalidCode is returned when a tenant code is empty, too long, not
	// DNS-safe or purely numeric.
	ErrInvalidCode = errors.New("invalid tenant code")

	// ErrInvalidName is returned when a tenant name is empty.
	ErrInvalidName = errors.New("invalid tenant name")

	// ErrNotPrivileged is returned when a restricted caller invokes a
	// tenant-management operation.
	ErrNotPrivileged = errors.New("tenant management requires the privileged role")
)
