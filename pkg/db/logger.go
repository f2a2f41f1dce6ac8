package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold marks queries worth a warning in production logs.
const SlowQueryThreshold = 200 * time.Millisecond

// slogGormLogger routes GORM's logging through the application's structured
// logger instead of GORM's stdout default.
type slogGormLogger struct {
	log *slog.Logger
}

// NewSlogGormLogger bridges *slog.Logger to gorm's logger interface.
func NewSlogGormLogger(log *slog.Logger) gormlogger.Interface {
	if log == nil {
		log = slog.Default()
	}
	return &slogGormLogger{log: log}
}

// LogMode is a no-op: verbosity is controlled by the slog handler level.
func (l *slogGormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log.InfoContext(ctx, msg, slog.Any("args", args))
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log.WarnContext(ctx, msg, slog.Any("args", args))
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log.ErrorContext(ctx, msg, slog.Any("args", args))
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "query failed",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()))
	case elapsed > SlowQueryThreshold:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	default:
		sql, rows := fc()
		l.log.DebugContext(ctx, "query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	}
}
