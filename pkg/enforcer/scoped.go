package enforcer

// Scoped marks an entity that participates in tenant isolation. The explicit
// accessor pair keeps the contract statically checkable; the enforcer never
// reaches into struct fields to find the owning tenant.
//
// A nil tenant id marks a platform-level record visible only to
// unrestricted callers through guarded paths.
type Scoped interface {
	GetTenantID() *int64
	SetTenantID(id int64)
}

// Owned is the embeddable tenant-ownership column. Embedding it satisfies
// Scoped on the pointer type:
//
//	type Notice struct {
//		ID uint64 `gorm:"primaryKey"`
//		enforcer.Owned
//	}
//
// The column is stamped once on create and never updated afterwards; the
// enforcer strips it from update assignments.
type Owned struct {
	TenantID *int64 `gorm:"column:tenant_id;index" json:"tenant_id,omitempty"`
}

// GetTenantID returns the owning tenant, nil for platform-level records.
func (o *Owned) GetTenantID() *int64 {
	return o.TenantID
}

// SetTenantID stamps the owning tenant.
func (o *Owned) SetTenantID(id int64) {
	o.TenantID = &id
}
