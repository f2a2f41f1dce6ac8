package tenant

import (
	"context"
	"strconv"
	"time"
)

// Tenant represents one isolated customer organization with the minimal
// information needed for request-scoped resolution and display.
type Tenant struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider loads tenant information from a data source.
//
// GetByID and GetByCode return ErrTenantNotFound when no tenant matches.
// Any other error is treated as a lookup-store failure by callers, which
// must fail closed rather than grant unrestricted access.
type Provider interface {
	GetByID(ctx context.Context, id int64) (*Tenant, error)
	GetByCode(ctx context.Context, code string) (*Tenant, error)
}

// Identity is the resolved tenant binding of a single request. It is either
// restricted to one concrete tenant or unrestricted (a privileged caller
// operating across tenants). The zero value is unrestricted.
//
// There is no "unresolved" third state: resolution always produces a
// definite Identity or an error.
type Identity struct {
	id         int64
	restricted bool
}

// Restricted returns an identity bound to the given tenant id.
func Restricted(id int64) Identity {
	return Identity{id: id, restricted: true}
}

// Unrestricted returns the privileged identity that bypasses isolation.
func Unrestricted() Identity {
	return Identity{}
}

// TenantID returns the bound tenant id. The second return value is false
// for the unrestricted identity.
func (i Identity) TenantID() (int64, bool) {
	return i.id, i.restricted
}

// IsRestricted reports whether the identity is bound to a tenant.
func (i Identity) IsRestricted() bool {
	return i.restricted
}

// String implements fmt.Stringer for log output.
func (i Identity) String() string {
	if !i.restricted {
		return "tenant:unrestricted"
	}
	return "tenant:" + strconv.FormatInt(i.id, 10)
}
