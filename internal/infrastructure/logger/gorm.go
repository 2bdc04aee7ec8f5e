package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// GormLogger adapts zap to gorm's logger.Interface. Statements are logged
// at debug, slow statements at warn and failures at error, all carrying the
// request fields found in ctx.
type GormLogger struct {
	log          *zap.Logger
	logLevel     gormlogger.LogLevel
	slowQuery    time.Duration
	keepNotFound bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the slow statement threshold; zero turns it off.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowQuery = threshold }
}

// WithIgnoreRecordNotFoundError decides whether gorm.ErrRecordNotFound is
// an error worth logging. Lookups by key miss routinely in the ledger, so
// it is ignored unless set to false.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) { l.keepNotFound = !ignore }
}

func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{log: base.Named("gorm"), logLevel: level, slowQuery: defaultSlowQuery}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode returns a copy at the new level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.logLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.logLevel < min {
		return
	}
	l.log.With(ContextFields(ctx)...).Sugar().Logf(lvl, msg, data...)
}

// Trace is called by gorm once per statement
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}
	if err != nil && !l.keepNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slowQuery > 0 && elapsed > l.slowQuery

	var (
		lvl zapcore.Level
		msg string
	)
	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		lvl, msg = zapcore.ErrorLevel, "SQL Error"
	case err == nil && slow && l.logLevel >= gormlogger.Warn:
		lvl, msg = zapcore.WarnLevel, "Slow SQL"
	case l.logLevel >= gormlogger.Info:
		lvl, msg = zapcore.DebugLevel, "SQL Query"
	default:
		return
	}

	sql, rows := fc()
	fields := append(ContextFields(ctx),
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.slowQuery))
	}
	l.log.Log(lvl, msg, fields...)
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"fatal":  gormlogger.Error,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// MapGormLogLevel picks the gorm level for an application log level.
// debug and info log every statement; anything else logs warnings.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	if lvl, ok := gormLevels[level]; ok {
		return lvl
	}
	return gormlogger.Warn
}
