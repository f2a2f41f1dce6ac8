package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a GORM handle over a pgx-backed connection pool with retry
// logic for reliable startup. Uses linear backoff so simultaneously
// restarting services do not hammer the database.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	for i := range cfg.RetryAttempts {
		sqlDB := stdlib.OpenDB(*connConfig)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
		sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)

		// Verify with an actual ping to catch authentication and permission
		// issues before handing the pool to GORM.
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger:         NewSlogGormLogger(log),
			TranslateError: true,
		})
		if err != nil {
			_ = sqlDB.Close()
			time.Sleep(time.Duration(i+1) * cfg.RetryInterval)
			continue
		}

		return gormDB, nil
	}

	return nil, ErrFailedToOpenDBConnection
}
