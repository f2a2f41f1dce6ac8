package tenant_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlane/classlane/pkg/tenant"
)

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	t.Run("round trips a restricted identity", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(7))

		identity, ok := tenant.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.True(t, identity.IsRestricted())

		id, restricted := identity.TenantID()
		assert.True(t, restricted)
		assert.Equal(t, int64(7), id)
	})

	t.Run("round trips the unrestricted identity", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Unrestricted())

		identity, ok := tenant.IdentityFromContext(ctx)
		require.True(t, ok)
		assert.False(t, identity.IsRestricted())

		_, restricted := identity.TenantID()
		assert.False(t, restricted)
	})

	t.Run("empty context has no identity", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.IdentityFromContext(context.Background())
		assert.False(t, ok)

		_, ok = tenant.ActiveTenantID(context.Background())
		assert.False(t, ok)
	})

	t.Run("active tenant id shortcut", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(42))
		id, ok := tenant.ActiveTenantID(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(42), id)

		ctx = tenant.WithIdentity(context.Background(), tenant.Unrestricted())
		_, ok = tenant.ActiveTenantID(ctx)
		assert.False(t, ok, "unrestricted identity binds no tenant id")
	})

	t.Run("must panics without identity", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustIdentityFromContext(context.Background())
		})
	})
}

func TestIdentityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tenant:7", tenant.Restricted(7).String())
	assert.Equal(t, "tenant:unrestricted", tenant.Unrestricted().String())
}

// TestIdentityIsolationUnderConcurrency interleaves many goroutines, each
// simulating one request bound to its own tenant, and verifies no goroutine
// ever observes another's binding.
func TestIdentityIsolationUnderConcurrency(t *testing.T) {
	t.Parallel()

	const goroutines = 64
	const reads = 200

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()

			ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(id))
			for range reads {
				got, ok := tenant.ActiveTenantID(ctx)
				if !ok || got != id {
					t.Errorf("goroutine bound to tenant %d observed %d (ok=%v)", id, got, ok)
					return
				}
			}
		}(int64(i + 1))
	}
	wg.Wait()
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := tenant.LoggerExtractor()

	attr, ok := extract(tenant.WithIdentity(context.Background(), tenant.Restricted(7)))
	require.True(t, ok)
	assert.Equal(t, "tenant_id", attr.Key)
	assert.Equal(t, "7", attr.Value.String())

	_, ok = extract(context.Background())
	assert.False(t, ok)

	_, ok = extract(tenant.WithIdentity(context.Background(), tenant.Unrestricted()))
	assert.False(t, ok)
}
