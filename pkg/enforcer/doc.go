// Package enforcer implements the data-access half of tenant isolation as a
// GORM plugin: automatic stamping of new records with the owning tenant and
// automatic restriction of every query, update and delete to the active
// tenant's rows.
//
// Entities opt in by implementing Scoped, usually by embedding Owned. The
// active tenant comes from the identity that package tenant binds to the
// request context; an unrestricted (privileged) identity deactivates both
// behaviors for that request.
//
//	db, _ := gorm.Open(dialector, &gorm.Config{})
//	_ = db.Use(enforcer.New(logger))
//
//	// stamped with the context tenant:
//	db.WithContext(ctx).Create(&notice)
//
//	// restricted to the context tenant:
//	db.WithContext(ctx).Find(&notices)
//
// Lookups by keys that are unique across tenants bypass the filter
// explicitly and defend the result themselves:
//
//	enforcer.Unscoped(db.WithContext(ctx)).First(&n, "public_id = ?", id)
//	if err := tenant.AssertAccess(ctx, n.GetTenantID()); err != nil { ... }
//
// List queries that pass a slice destination should set the model
// explicitly (db.Model(&Notice{}).Find(&notices)) or rely on the parsed
// schema fallback.
package enforcer
