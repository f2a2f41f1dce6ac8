package tenant

import (
	"context"
	"fmt"
)

// AssertAccess defends a record that was loaded by a tenant-agnostic key
// (a unique code, a cross-table join) and therefore bypassed the automatic
// row filter. It is the second layer of defense on top of that filter.
//
// Unrestricted callers always pass. Restricted callers pass only when the
// record's owning tenant equals the active tenant; a mismatch fails with
// ErrCrossTenantAccess, which is deliberately distinguishable from the
// filter's silent not-found because the caller has already proven the
// record exists.
//
// A nil recordTenantID marks a platform-level record, which restricted
// callers may never touch through a guarded path.
func AssertAccess(ctx context.Context, recordTenantID *int64) error {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		// No boundary middleware ran; refuse rather than assume privilege.
		return ErrNoIdentityInContext
	}

	active, restricted := identity.TenantID()
	if !restricted {
		return nil
	}

	if recordTenantID == nil || *recordTenantID != active {
		return fmt.Errorf("%w: record does not belong to tenant %d", ErrCrossTenantAccess, active)
	}
	return nil
}
