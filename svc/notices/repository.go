package notices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/classlane/classlane/pkg/enforcer"
	"github.com/classlane/classlane/pkg/tenant"
)

// ErrNoticeNotFound is returned for missing notices and, identically, for
// notices the caller's tenant filter hides.
var ErrNoticeNotFound = errors.New("notice not found")

// Repository persists notices. Tenant stamping and filtering happen in the
// enforcer plugin, so none of these methods mention tenant_id; the one
// exception is GetByPublicID, which bypasses the filter on purpose and
// defends the loaded record itself.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a notice repository on an established GORM handle.
func NewRepository(gormDB *gorm.DB) *Repository {
	return &Repository{db: gormDB}
}

// Create persists a new notice. The owning tenant comes from the request
// context; an unrestricted caller without an explicit tenant produces a
// platform-level notice visible to every tenant's operators.
func (r *Repository) Create(ctx context.Context, n *Notice) error {
	if n.PublicID == uuid.Nil {
		n.PublicID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

// Get loads one notice by primary key, subject to the tenant filter.
func (r *Repository) Get(ctx context.Context, id uint64) (*Notice, error) {
	var n Notice
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &n, nil
}

// GetByPublicID loads a notice by its cross-tenant unique id. The automatic
// filter is bypassed so the record is found regardless of owner, then the
// access guard decides: restricted callers get ErrCrossTenantAccess for
// another tenant's notice instead of a silent not-found, because resolving
// the public id already proves the record exists.
func (r *Repository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*Notice, error) {
	var n Notice
	if err := enforcer.Unscoped(r.db.WithContext(ctx)).First(&n, "public_id = ?", publicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}

	if err := tenant.AssertAccess(ctx, n.GetTenantID()); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns notices visible to the caller, pinned first. A restricted
// caller sees only their tenant's rows; a privileged caller sees all.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Notice, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var out []Notice
	err := r.db.WithContext(ctx).
		Model(&Notice{}).
		Order("pinned DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies title, body and pinned of an existing notice. Ownership
// is immutable: the enforcer strips tenant_id from every update.
func (r *Repository) Update(ctx context.Context, n *Notice) error {
	res := r.db.WithContext(ctx).
		Model(&Notice{}).
		Where("id = ?", n.ID).
		Updates(map[string]any{
			"title":  n.Title,
			"body":   n.Body,
			"pinned": n.Pinned,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoticeNotFound
	}
	return nil
}

// Delete removes a notice, subject to the tenant filter.
func (r *Repository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&Notice{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoticeNotFound
	}
	return nil
}

// AutoMigrate creates the notices table for tests on throwaway databases.
func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Notice{})
}
