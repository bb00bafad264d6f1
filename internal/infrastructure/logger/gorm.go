package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// maxLoggedSQL caps statement text; batched field reads expand into long
// IN lists.
const maxLoggedSQL = 2048

// GormLogger sends GORM output to zap. Statements carry the request id when
// the query context has one.
type GormLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
	level gormlogger.LogLevel
	slow  time.Duration
}

// NewGormLogger creates a GORM logger. A zero slow threshold disables slow
// query warnings.
func NewGormLogger(l *zap.Logger, level gormlogger.LogLevel, slow time.Duration) *GormLogger {
	named := l.Named("gorm")
	return &GormLogger{base: named, sugar: named.Sugar(), level: level, slow: slow}
}

func (l *GormLogger) enabled(at gormlogger.LogLevel) bool { return l.level >= at }

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Info) {
		l.sugar.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Warn) {
		l.sugar.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Error) {
		l.sugar.Errorf(msg, data...)
	}
}

// Trace logs one executed statement. Record-not-found is an ordinary lookup
// miss and is never logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent || errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}
	elapsed := time.Since(begin)
	isSlow := l.slow > 0 && elapsed > l.slow

	var log func(string, ...zap.Field)
	msg := "query"
	switch {
	case err != nil && l.enabled(gormlogger.Error):
		log, msg = l.base.Error, "query failed"
	case isSlow && l.enabled(gormlogger.Warn):
		log, msg = l.base.Warn, "slow query"
	case err == nil && l.enabled(gormlogger.Info):
		log = l.base.Debug
	default:
		return
	}

	stmt, rows := fc()
	if len(stmt) > maxLoggedSQL {
		stmt = stmt[:maxLoggedSQL] + "..."
	}
	fields := []zap.Field{
		zap.String("sql", stmt),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if isSlow {
		fields = append(fields, zap.Duration("threshold", l.slow))
	}
	log(msg, fields...)
}

// MapGormLogLevel maps the application log level onto GORM's scale. SQL text
// is only traced at info or debug.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
