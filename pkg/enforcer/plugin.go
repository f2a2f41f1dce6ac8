package enforcer

import (
	"log/slog"
	"reflect"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/classlane/classlane/pkg/tenant"
)

const (
	pluginName = "tenant_enforcer"

	// unscopedSetting disables the row filter for one statement.
	unscopedSetting = "tenant_enforcer:unscoped"

	tenantColumn = "tenant_id"
)

var scopedType = reflect.TypeOf((*Scoped)(nil)).Elem()

// Plugin wires tenant isolation into a *gorm.DB:
//
//   - on create, records implementing Scoped are stamped with the tenant
//     bound to the statement context, unless the caller set one explicitly;
//   - on query, row, update and delete, statements against Scoped models are
//     conjoined with "tenant_id = <active tenant>" when the context identity
//     is restricted.
//
// The predicate is derived from the statement's own context on every
// execution and attached per statement, never to the shared *gorm.DB, so a
// restriction cannot leak into another request under connection reuse. An
// unrestricted (privileged) context adds no predicate and sees all rows.
//
// Violations never surface as errors here: a restricted caller reading
// another tenant's row simply gets gorm.ErrRecordNotFound, which hides the
// record's existence.
type Plugin struct {
	logger *slog.Logger
}

// New creates the enforcer plugin. Register it right after opening the
// database: db.Use(enforcer.New(logger)).
func New(logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Plugin{logger: logger}
}

// Name implements gorm.Plugin.
func (p *Plugin) Name() string {
	return pluginName
}

// Initialize implements gorm.Plugin.
func (p *Plugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").
		Register(pluginName+":stamp", p.stampCreate); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").
		Register(pluginName+":filter_query", p.filter); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").
		Register(pluginName+":filter_row", p.filter); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").
		Register(pluginName+":filter_update", p.filterUpdate); err != nil {
		return err
	}
	return db.Callback().Delete().Before("gorm:delete").
		Register(pluginName+":filter_delete", p.filter)
}

// Unscoped disables the automatic row filter for one statement. Call sites
// using it must defend the loaded record with tenant.AssertAccess; the
// typical case is a lookup by a unique key shared across tenants.
func Unscoped(tx *gorm.DB) *gorm.DB {
	return tx.Set(unscopedSetting, true)
}

// stampCreate copies the active tenant into new records whose tenant is not
// already set. An unrestricted context leaves the column NULL, which is
// intentional for platform-level records.
func (p *Plugin) stampCreate(tx *gorm.DB) {
	id, restricted := tenant.ActiveTenantID(tx.Statement.Context)
	if !restricted {
		return
	}

	switch dest := tx.Statement.Dest.(type) {
	case Scoped:
		if dest.GetTenantID() == nil {
			dest.SetTenantID(id)
		}
	default:
		stampSlice(tx.Statement.Dest, id)
	}
}

// stampSlice handles batch inserts. Element access needs reflection, but
// the assignment still goes through the Scoped contract.
func stampSlice(dest any, id int64) {
	rv := reflect.ValueOf(dest)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() != reflect.Pointer && elem.CanAddr() {
			elem = elem.Addr()
		}
		if scoped, ok := elem.Interface().(Scoped); ok && scoped.GetTenantID() == nil {
			scoped.SetTenantID(id)
		}
	}
}

// filter conjoins the tenant predicate to statements against Scoped models
// when the context identity is restricted.
func (p *Plugin) filter(tx *gorm.DB) {
	id, restricted := tenant.ActiveTenantID(tx.Statement.Context)
	if !restricted {
		return
	}
	if _, unscoped := tx.Get(unscopedSetting); unscoped {
		return
	}
	if !scopedStatement(tx) {
		return
	}

	tx.Statement.AddClause(clause.Where{Exprs: []clause.Expression{
		clause.Eq{
			Column: clause.Column{Table: clause.CurrentTable, Name: tenantColumn},
			Value:  id,
		},
	}})
}

// filterUpdate additionally strips the tenant column from update
// assignments: ownership is immutable after creation.
func (p *Plugin) filterUpdate(tx *gorm.DB) {
	if scopedStatement(tx) && !slices.Contains(tx.Statement.Omits, tenantColumn) {
		tx.Statement.Omits = append(tx.Statement.Omits, tenantColumn)
	}
	p.filter(tx)
}

// scopedStatement reports whether the statement targets a tenant-scoped
// model. Model and Dest are checked directly; list queries without an
// explicit Model fall back to the parsed schema's model type.
func scopedStatement(tx *gorm.DB) bool {
	if _, ok := tx.Statement.Model.(Scoped); ok {
		return true
	}
	if _, ok := tx.Statement.Dest.(Scoped); ok {
		return true
	}
	if s := tx.Statement.Schema; s != nil {
		return reflect.PointerTo(s.ModelType).Implements(scopedType)
	}
	return false
}
