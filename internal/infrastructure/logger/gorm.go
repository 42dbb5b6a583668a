package logger

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultMaxSQLLength caps the statement text written per entry. Bulk CSV
// imports and category IN lists otherwise flood the log.
const DefaultMaxSQLLength = 2048

// GormLogger routes GORM statements into the zap logger named "gorm".
// Record-not-found is never logged; repositories map it to ErrNotFound.
type GormLogger struct {
	logger        *zap.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
	maxSQLLength  int
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as slow.
// Zero disables slow query reporting.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// WithMaxSQLLength truncates logged statements to n bytes; n <= 0 keeps them whole
func WithMaxSQLLength(n int) GormLoggerOption {
	return func(l *GormLogger) {
		l.maxSQLLength = n
	}
}

// NewGormLogger creates a GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		logLevel:      level,
		slowThreshold: 200 * time.Millisecond,
		maxSQLLength:  DefaultMaxSQLLength,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Info, msg, data)
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Warn, msg, data)
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	l.printf(gormlogger.Error, msg, data)
}

func (l *GormLogger) printf(level gormlogger.LogLevel, msg string, data []any) {
	if l.logLevel < level {
		return
	}
	sugar := l.logger.Sugar()
	switch level {
	case gormlogger.Error:
		sugar.Errorf(msg, data...)
	case gormlogger.Warn:
		sugar.Warnf(msg, data...)
	default:
		sugar.Infof(msg, data...)
	}
}

// Trace implements gormlogger.Interface. Failures log at error, slow
// statements at warn and everything else at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}
	if err != nil && errors.Is(err, gormlogger.ErrRecordNotFound) {
		err = nil
	}

	elapsed := time.Since(begin)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold
	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
	case slow && l.logLevel >= gormlogger.Warn:
	case l.logLevel >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", l.truncate(sql)),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		l.logger.Error("SQL error", append(fields, zap.Error(err))...)
	case slow && l.logLevel >= gormlogger.Warn:
		l.logger.Warn("Slow SQL", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	default:
		l.logger.Debug("SQL", fields...)
	}
}

func (l *GormLogger) truncate(sql string) string {
	if l.maxSQLLength <= 0 || len(sql) <= l.maxSQLLength {
		return sql
	}
	return sql[:l.maxSQLLength] + "... (" + strconv.Itoa(len(sql)) + " bytes)"
}

// MapGormLogLevel maps the application log level to a GORM log level.
// SQL statements are only traced at debug.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
