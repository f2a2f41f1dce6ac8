// Package db provides the PostgreSQL storage foundation: a GORM handle over
// a pgx-backed pool with retry on startup, goose migrations, a structured
// logging bridge, a health check and error classifiers.
//
// Connection settings are described by Config, populated from environment
// variables via github.com/caarlos0/env.
//
//	var cfg db.Config
//	config.MustLoad(&cfg)
//
//	gormDB, err := db.Connect(ctx, cfg, logger)
//	if err != nil { ... }
//	if err := db.Migrate(ctx, gormDB, cfg, logger); err != nil { ... }
//
// The tenant-isolation enforcer is registered on the returned handle by the
// caller (see package enforcer); this package stays policy-free.
package db
