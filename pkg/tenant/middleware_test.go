package tenant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classlane/classlane/pkg/principal"
	"github.com/classlane/classlane/pkg/tenant"
)

func newBoundaryRequest(target, header string, roles ...string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	if header != "" {
		req.Header.Set("X-Tenant-ID", header)
	}
	if len(roles) > 0 {
		ctx := principal.WithPrincipal(req.Context(), &principal.Principal{Roles: roles})
		req = req.WithContext(ctx)
	}
	return req
}

func TestMiddlewareBinding(t *testing.T) {
	t.Parallel()

	t.Run("restricted caller gets the resolved tenant", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(tenant.NewResolver(acmeProvider()))

		var got tenant.Identity
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = tenant.MustIdentityFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://anything.example.com/courses", "acme", "STUDENT"))

		require.Equal(t, http.StatusOK, rec.Code)
		id, restricted := got.TenantID()
		assert.True(t, restricted)
		assert.Equal(t, int64(7), id)
	})

	t.Run("privileged caller is unrestricted and skips resolution", func(t *testing.T) {
		t.Parallel()

		provider := acmeProvider()
		mw := tenant.Middleware(tenant.NewResolver(provider))

		var got tenant.Identity
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = tenant.MustIdentityFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/admin", "acme", "superadmin"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, got.IsRestricted())
		assert.Zero(t, provider.calls, "privileged requests must not hit the lookup store")
	})

	t.Run("custom privileged role name", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(tenant.NewResolver(acmeProvider()),
			tenant.WithPrivilegedRole("platform-operator"))

		var got tenant.Identity
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = tenant.MustIdentityFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/", "", "platform-operator"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, got.IsRestricted())
	})

	t.Run("skip paths bypass the boundary entirely", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(tenant.NewResolver(acmeProvider()),
			tenant.WithSkipPaths("/health", "/docs"))

		var sawIdentity bool
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawIdentity = tenant.IdentityFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/health/live", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, sawIdentity)
	})
}

func TestMiddlewareFailureModes(t *testing.T) {
	t.Parallel()

	t.Run("lookup store outage fails closed with 503", func(t *testing.T) {
		t.Parallel()

		provider := acmeProvider()
		provider.failWith = errors.New("connection refused")
		mw := tenant.Middleware(tenant.NewResolver(provider))

		var handlerRan bool
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerRan = true
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/", "acme", "STUDENT"))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, handlerRan, "no handler may run with an undetermined tenant")
	})

	t.Run("unknown tenant yields 404", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(tenant.NewResolver(acmeProvider()))
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/", "nosuch", "STUDENT"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("custom error handler is used", func(t *testing.T) {
		t.Parallel()

		mw := tenant.Middleware(tenant.NewResolver(acmeProvider()),
			tenant.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				w.WriteHeader(http.StatusTeapot)
			}))
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newBoundaryRequest("https://acme.classlane.io/", "nosuch", "STUDENT"))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

// TestMiddlewareCleanupAfterPanic verifies one request's binding cannot
// outlive its handler, even a panicking one: the next request on the same
// middleware chain observes only its own tenant.
func TestMiddlewareCleanupAfterPanic(t *testing.T) {
	t.Parallel()

	mw := tenant.Middleware(tenant.NewResolver(acmeProvider()))

	panicking := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := newBoundaryRequest("https://acme.classlane.io/", "acme", "STUDENT")
	func() {
		defer func() { _ = recover() }()
		panicking.ServeHTTP(httptest.NewRecorder(), req)
	}()

	// The original request context never carried the binding; the panicking
	// handler's derived context died with it.
	_, ok := tenant.IdentityFromContext(req.Context())
	assert.False(t, ok)

	var got tenant.Identity
	follow := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = tenant.MustIdentityFromContext(r.Context())
	}))
	follow.ServeHTTP(httptest.NewRecorder(), newBoundaryRequest("https://globex.classlane.io/", "globex", "STUDENT"))

	id, _ := got.TenantID()
	assert.Equal(t, int64(9), id)
}

func TestRequireTenant(t *testing.T) {
	t.Parallel()

	handler := tenant.RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("passes with a restricted identity", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(tenant.WithIdentity(req.Context(), tenant.Restricted(7)))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects without identity", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects the unrestricted identity", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(tenant.WithIdentity(req.Context(), tenant.Unrestricted()))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
