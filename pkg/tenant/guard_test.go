package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classlane/classlane/pkg/tenant"
)

func ptr(id int64) *int64 { return &id }

func TestAssertAccess(t *testing.T) {
	t.Parallel()

	t.Run("matching tenant passes", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(5))
		assert.NoError(t, tenant.AssertAccess(ctx, ptr(5)))
	})

	t.Run("mismatch fails with cross-tenant error", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(6))
		err := tenant.AssertAccess(ctx, ptr(5))
		assert.ErrorIs(t, err, tenant.ErrCrossTenantAccess)
	})

	t.Run("unrestricted always passes", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Unrestricted())
		assert.NoError(t, tenant.AssertAccess(ctx, ptr(5)))
		assert.NoError(t, tenant.AssertAccess(ctx, nil))
	})

	t.Run("platform record is off limits for restricted callers", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(5))
		err := tenant.AssertAccess(ctx, nil)
		assert.ErrorIs(t, err, tenant.ErrCrossTenantAccess)
	})

	t.Run("missing identity refuses rather than assumes privilege", func(t *testing.T) {
		t.Parallel()

		err := tenant.AssertAccess(context.Background(), ptr(5))
		assert.ErrorIs(t, err, tenant.ErrNoIdentityInContext)
	})
}
