// Package logger builds the zap loggers used across the ledger and carries
// request-scoped fields (request id, actor, trace) through context.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormat is the layout of the "time" field
const DefaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config mirrors the [log] section of the application config
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	TimeFormat string
}

func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "console", Output: "stdout", TimeFormat: DefaultTimeFormat}
}

var levels = map[string]zapcore.Level{
	"debug":   zapcore.DebugLevel,
	"info":    zapcore.InfoLevel,
	"warn":    zapcore.WarnLevel,
	"warning": zapcore.WarnLevel,
	"error":   zapcore.ErrorLevel,
	"fatal":   zapcore.FatalLevel,
}

// ParseLevel is case-insensitive; unknown names mean info.
func ParseLevel(level string) zapcore.Level {
	if lvl, ok := levels[strings.ToLower(level)]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}

// New returns a logger writing to cfg.Output. Any extra cores are teed in
// and see every entry, e.g. the OTLP log bridge.
func New(cfg *Config, extra ...zapcore.Core) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	layout := cfg.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}

	cores := append([]zapcore.Core{
		zapcore.NewCore(encoderFor(cfg.Format, layout), sinkFor(cfg.Output), ParseLevel(cfg.Level)),
	}, extra...)

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// NewCore is the local output core without any bridges
func NewCore(cfg *Config) zapcore.Core {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	return zapcore.NewCore(encoderFor(cfg.Format, layout), sinkFor(cfg.Output), ParseLevel(cfg.Level))
}

func encoderFor(format, layout string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if strings.EqualFold(format, "console") {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// sinkFor falls back to stdout when a log file cannot be opened.
func sinkFor(output string) zapcore.WriteSyncer {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	}
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zapcore.Lock(os.Stdout)
	}
	return zapcore.AddSync(f)
}

func Sync(logger *zap.Logger) error {
	return logger.Sync()
}
