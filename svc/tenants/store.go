package tenants

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/classlane/classlane/pkg/db"
	"github.com/classlane/classlane/pkg/tenant"
)

// record is the GORM mapping of the tenants table. The table is the lookup
// source of the isolation layer and is itself never tenant-scoped, so it
// deliberately does not implement enforcer.Scoped.
type record struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;size:63;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (record) TableName() string {
	return "tenants"
}

func (r *record) toTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:        r.ID,
		Code:      r.Code,
		Name:      r.Name,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

// Store implements tenant.Provider on top of GORM.
type Store struct {
	db *gorm.DB
}

// NewStore creates a tenant store on an established GORM handle.
func NewStore(gormDB *gorm.DB) *Store {
	return &Store{db: gormDB}
}

// GetByID implements tenant.Provider.
func (s *Store) GetByID(ctx context.Context, id int64) (*tenant.Tenant, error) {
	var r record
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if db.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return r.toTenant(), nil
}

// GetByCode implements tenant.Provider.
func (s *Store) GetByCode(ctx context.Context, code string) (*tenant.Tenant, error) {
	var r record
	if err := s.db.WithContext(ctx).First(&r, "code = ?", code).Error; err != nil {
		if db.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return r.toTenant(), nil
}

// List returns all tenants ordered by id.
func (s *Store) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var rows []record
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*tenant.Tenant, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toTenant())
	}
	return out, nil
}

// insert persists a new tenant and returns it with the assigned id.
func (s *Store) insert(ctx context.Context, code, name string) (*tenant.Tenant, error) {
	r := record{Code: code, Name: name, Active: true}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return r.toTenant(), nil
}

// setActive flips the active flag. Returns the updated tenant.
func (s *Store) setActive(ctx context.Context, id int64, active bool) (*tenant.Tenant, error) {
	res := s.db.WithContext(ctx).Model(&record{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, tenant.ErrTenantNotFound
	}
	return s.GetByID(ctx, id)
}

// AutoMigrate creates the tenants table. Production schemas come from the
// goose migrations; this is for tests on throwaway databases.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&record{})
}
