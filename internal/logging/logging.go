// Package logging builds the zap logger shared by the daemon and its HTTP
// middleware.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the optional log file.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
)

// Config selects encoder, level and sinks.
type Config struct {
	// Debug switches to a console encoder at debug level.
	Debug bool
	// FilePath, when set, tees output into a rotating file.
	FilePath string
}

// New builds a logger writing to stderr and, if configured, to a rotating file.
func New(cfg Config) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(cfg.Debug), zapcore.Lock(os.Stderr), level),
	}

	if cfg.FilePath != "" {
		cores = append(cores, zapcore.NewCore(newEncoder(false), NewFileWriter(cfg.FilePath), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// NewFileWriter returns a WriteSyncer that rotates path by size and age.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	})
}

func newEncoder(console bool) zapcore.Encoder {
	if console {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	return zapcore.NewJSONEncoder(encCfg)
}
