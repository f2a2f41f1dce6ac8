package notices

import (
	"time"

	"github.com/google/uuid"

	"github.com/classlane/classlane/pkg/enforcer"
)

// Notice is a tenant-owned notice-board entry. Embedding enforcer.Owned
// opts it into automatic tenant stamping and row filtering; the PublicID is
// unique across all tenants, which is exactly the kind of tenant-agnostic
// key that must be defended with tenant.AssertAccess after lookup.
type Notice struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	enforcer.Owned
	PublicID  uuid.UUID `gorm:"column:public_id;type:uuid;uniqueIndex;not null" json:"public_id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	Pinned    bool      `gorm:"column:pinned;not null;default:false" json:"pinned"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName implements gorm's table naming convention.
func (Notice) TableName() string {
	return "notices"
}
