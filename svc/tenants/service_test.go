package tenants_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/classlane/classlane/pkg/enforcer"
	"github.com/classlane/classlane/pkg/tenant"
	"github.com/classlane/classlane/svc/tenants"
)

func newService(t *testing.T) (*tenants.Service, *tenants.Store, *tenant.CachedProvider) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.Use(enforcer.New(nil)))

	store := tenants.NewStore(gormDB)
	require.NoError(t, store.AutoMigrate())

	cache := tenant.NewInMemoryCache()
	t.Cleanup(func() { _ = cache.Close() })
	cached := tenant.NewCachedProvider(store, cache, time.Minute)

	return tenants.NewService(store, cached, nil), store, cached
}

func adminCtx() context.Context {
	return tenant.WithIdentity(context.Background(), tenant.Unrestricted())
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates an active tenant", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(t)

		created, err := svc.Create(adminCtx(), "Acme", "Acme School District")
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "acme", created.Code, "codes are stored lowercase")
		assert.True(t, created.Active)

		got, err := store.GetByCode(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("rejects a taken code", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.Create(adminCtx(), "acme", "Acme")
		require.NoError(t, err)

		_, err = svc.Create(adminCtx(), "ACME", "Acme Again")
		assert.ErrorIs(t, err, tenants.ErrCodeTaken)
	})

	t.Run("rejects invalid codes", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		for _, code := range []string{"", "123", "-leading", "has space", "über"} {
			_, err := svc.Create(adminCtx(), code, "Name")
			assert.ErrorIs(t, err, tenants.ErrInvalidCode, "code %q", code)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.Create(adminCtx(), "acme", "   ")
		assert.ErrorIs(t, err, tenants.ErrInvalidName)
	})

	t.Run("restricted callers cannot manage tenants", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		ctx := tenant.WithIdentity(context.Background(), tenant.Restricted(7))
		_, err := svc.Create(ctx, "acme", "Acme")
		assert.ErrorIs(t, err, tenants.ErrNotPrivileged)

		_, err = svc.List(ctx)
		assert.ErrorIs(t, err, tenants.ErrNotPrivileged)
	})

	t.Run("no identity is refused", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.Create(context.Background(), "acme", "Acme")
		assert.ErrorIs(t, err, tenant.ErrNoIdentityInContext)
	})
}

func TestServiceSetActive(t *testing.T) {
	t.Parallel()

	t.Run("deactivation stops resolution", func(t *testing.T) {
		t.Parallel()
		svc, _, cached := newService(t)

		created, err := svc.Create(adminCtx(), "acme", "Acme")
		require.NoError(t, err)

		resolver := tenant.NewResolver(cached)
		_, err = resolver.Resolve(context.Background(), "acme", "")
		require.NoError(t, err)

		updated, err := svc.SetActive(adminCtx(), created.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.Active)

		// The write invalidated the cache, so the stale active copy is gone.
		_, err = resolver.Resolve(context.Background(), "acme", "")
		assert.ErrorIs(t, err, tenant.ErrInactiveTenant)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.SetActive(adminCtx(), 999, false)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestServiceList(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	_, err := svc.Create(adminCtx(), "acme", "Acme")
	require.NoError(t, err)
	_, err = svc.Create(adminCtx(), "globex", "Globex")
	require.NoError(t, err)

	all, err := svc.List(adminCtx())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "acme", all[0].Code)
	assert.Equal(t, "globex", all[1].Code)
}
