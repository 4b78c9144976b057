// Package logger provides the process-wide structured logger for tws.
package logger

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log      = zap.NewNop()
	mu       sync.RWMutex
	initOnce sync.Once
)

// Init builds the logger once. Later calls are no-ops. Output goes to
// stderr so that command output on stdout stays machine readable.
func Init(level zapcore.Level, meta ...zap.Field) error {
	var err error
	initOnce.Do(func() {
		var instance *zap.Logger
		instance, err = configure(level).Build()
		if err != nil {
			err = errors.Wrap(err, "failed to build logger")
			return
		}
		instance = instance.With(meta...)

		mu.Lock()
		log = instance
		mu.Unlock()
	})
	return err
}

// L returns the current logger. Before Init it discards everything.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Set replaces the logger, mainly for tests.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	log = l
	mu.Unlock()
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

// Level maps the verbose flag to a log level.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

func configure(level zapcore.Level) zap.Config {
	encoder := zap.NewProductionEncoderConfig()
	encoder.TimeKey = "timestamp"
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoder.EncodeCaller = zapcore.ShortCallerEncoder
	encoder.EncodeDuration = zapcore.StringDurationEncoder
	encoder.CallerKey = "caller"
	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}
