package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name  string
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. level is one of DEBUG, INFO,
// WARNING or ERROR; DEBUG selects zap's development encoder.
func NewLogger(level string, name string) *Logger {
	var cfg zap.Config
	switch strings.ToUpper(level) {
	case "DEBUG":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap only fails on bad sink paths; stdout is always valid
		base = zap.NewExample()
	}
	return wrap(base.Named(name), name)
}

// -----------------------------------------------------------------------------

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return wrap(zap.NewNop(), "nop")
}

// -----------------------------------------------------------------------------

// FromZap adapts an existing zap logger.
func FromZap(z *zap.Logger, name string) *Logger {
	return wrap(z.Named(name), name)
}

func wrap(z *zap.Logger, name string) *Logger {
	return &Logger{name: name, base: z, sugar: z.Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "WARNING", "WARN":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// -----------------------------------------------------------------------------

// Named returns a child logger with a dotted name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: l.name + "." + name, base: l.base.Named(name), sugar: l.base.Named(name).Sugar()}
}

// -----------------------------------------------------------------------------

// With attaches structured key/value pairs to every later entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	s := l.sugar.With(keysAndValues...)
	return &Logger{name: l.name, base: s.Desugar(), sugar: s}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.sugar.Errorf("CRITICAL: "+format, args...)
	_ = l.base.Sync()
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// -----------------------------------------------------------------------------

// Zap exposes the underlying logger for libraries that take one.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}
