package tenants

import (
	"context"
	"log/slog"
	"strings"

	"github.com/classlane/classlane/pkg/tenant"
)

// Service exposes tenant-management operations. All of them require the
// unrestricted identity: tenants are platform-level records, and a
// restricted caller must never create or mutate them.
//
// Every write invalidates the lookup cache so the isolation layer sees the
// change on the next resolution.
type Service struct {
	store  *Store
	cached *tenant.CachedProvider
	logger *slog.Logger
}

// NewService creates the tenant-management service. cached may be nil when
// no lookup cache is configured.
func NewService(store *Store, cached *tenant.CachedProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cached: cached, logger: logger}
}

// Create registers a new tenant with the given code and display name.
func (s *Service) Create(ctx context.Context, code, name string) (*tenant.Tenant, error) {
	if err := requireUnrestricted(ctx); err != nil {
		return nil, err
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if !tenant.IsValidCode(code) {
		return nil, ErrInvalidCode
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	t, err := s.store.insert(ctx, code, name)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tenant created",
		slog.Int64("tenant_id", t.ID),
		slog.String("code", t.Code))
	return t, nil
}

// SetActive activates or deactivates a tenant. Deactivated tenants stop
// resolving, which locks out all their traffic on the next request.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*tenant.Tenant, error) {
	if err := requireUnrestricted(ctx); err != nil {
		return nil, err
	}

	t, err := s.store.setActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	if s.cached != nil {
		s.cached.Invalidate(ctx, t)
	}

	s.logger.InfoContext(ctx, "tenant active flag changed",
		slog.Int64("tenant_id", t.ID),
		slog.Bool("active", t.Active))
	return t, nil
}

// Get returns one tenant by id.
func (s *Service) Get(ctx context.Context, id int64) (*tenant.Tenant, error) {
	if err := requireUnrestricted(ctx); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

// List returns all tenants.
func (s *Service) List(ctx context.Context) ([]*tenant.Tenant, error) {
	if err := requireUnrestricted(ctx); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

func requireUnrestricted(ctx context.Context) error {
	identity, ok := tenant.IdentityFromContext(ctx)
	if !ok {
		return tenant.ErrNoIdentityInContext
	}
	if identity.IsRestricted() {
		return ErrNotPrivileged
	}
	return nil
}
