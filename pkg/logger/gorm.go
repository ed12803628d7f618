package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength caps the statement text attached to a log entry.
const maxSQLLength = 1000

// GormLogger adapts GORM's logger interface to zap. Entries carry the
// request id found in the query context.
type GormLogger struct {
	ZapLogger     *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

// NewGormLoggerWithConfig creates a GORM logger. Every statement is logged
// only at "debug"; other levels report slow queries and errors.
func NewGormLoggerWithConfig(zapLogger *zap.Logger, slowQuerySeconds float64, logLevel string) *GormLogger {
	var level gormlogger.LogLevel
	switch logLevel {
	case "silent":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "debug":
		level = gormlogger.Info
	default:
		level = gormlogger.Warn
	}

	return &GormLogger{
		ZapLogger:     zapLogger.Named("gorm"),
		SlowThreshold: time.Duration(slowQuerySeconds * float64(time.Second)),
		LogLevel:      level,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Info {
		WithContext(ctx, l.ZapLogger).Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Warn {
		WithContext(ctx, l.ZapLogger).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= gormlogger.Error {
		WithContext(ctx, l.ZapLogger).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface. Missing rows and constraint
// violations are expected outcomes (lookups by name, the one-active-loan
// index) and are not reported as errors.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := WithContext(ctx, l.ZapLogger)

	fields := func() []zap.Field {
		sql, rows := fc()
		fs := []zap.Field{
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		}
		if len(sql) > maxSQLLength {
			return append(fs, zap.String("sql", sql[:maxSQLLength]+"..."), zap.Bool("sql_truncated", true))
		}
		return append(fs, zap.String("sql", sql))
	}

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		if l.LogLevel >= gormlogger.Info {
			log.Debug("gorm query found no rows", fields()...)
		}
	case err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)):
		if l.LogLevel >= gormlogger.Warn {
			log.Warn("gorm constraint violation", append(fields(), zap.Error(err))...)
		}
	case err != nil:
		log.Error("gorm query error", append(fields(), zap.Error(err))...)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		log.Warn("gorm slow query", append(fields(), zap.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		log.Debug("gorm query", fields()...)
	}
}
