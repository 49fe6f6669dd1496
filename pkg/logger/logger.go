package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envLocal = "local"

var (
	global *zap.Logger = zap.NewNop()
	mu     sync.RWMutex
)

// SetupLogger builds the process logger for env and installs it globally.
// Unknown levels fall back to info.
func SetupLogger(env string, level string) *zap.Logger {
	var cfg zap.Config
	if env == envLocal {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.Fields(zap.String("env", env)))
	if err != nil {
		l = zap.NewExample()
	}

	SetLogger(l)

	return l
}

// SetLogger replaces the global logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// Logger returns the global logger.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return global
}

// helper skips the package frame so helpers report their caller.
func helper() *zap.Logger {
	return Logger().WithOptions(zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	helper().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	helper().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	helper().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	helper().Error(msg, fields...)
}
