package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Healthcheck returns a closure that validates database connectivity for
// health endpoints, compatible with handlers expecting func(context.Context) error.
func Healthcheck(gormDB *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
