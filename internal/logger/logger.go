// Package logger provides the structured diagnostic logger. Human-facing run
// output goes through internal/ui; this logger writes to stderr only.
package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the logging level
type Level int

const (
	// DebugLevel logs everything
	DebugLevel Level = iota
	// InfoLevel logs info, warnings, and errors
	InfoLevel
	// WarnLevel logs warnings and errors
	WarnLevel
	// ErrorLevel logs only errors
	ErrorLevel
)

// LevelFromString parses a level name, defaulting to InfoLevel.
func LevelFromString(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zap.DebugLevel
	case WarnLevel:
		return zap.WarnLevel
	case ErrorLevel:
		return zap.ErrorLevel
	}
	return zap.InfoLevel
}

// Logger wraps zap.Logger with the fields this tool logs repeatedly
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// New creates a Logger. format "json" selects the production encoder;
// anything else gets the colored console encoder.
func New(level Level, format string) (*Logger, error) {
	var config zap.Config
	if format == "json" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		config.DisableStacktrace = true
	}
	config.Level = zap.NewAtomicLevelAt(level.zapLevel())
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}
	return Wrap(z), nil
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) *Logger {
	return &Logger{Logger: z, sugar: z.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

// WithRun adds the run id to every entry.
func (l *Logger) WithRun(runID string) *Logger {
	return Wrap(l.With(zap.String("run_id", runID)))
}

// WithCase adds case identity to every entry.
func (l *Logger) WithCase(name, source string) *Logger {
	return Wrap(l.With(zap.String("case", name), zap.String("fixture", source)))
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return Wrap(l.With(zap.Error(err), zap.String("error_type", fmt.Sprintf("%T", err))))
}

// Timed logs the start of an operation at debug level and returns a func
// that logs its completion with the elapsed time.
func (l *Logger) Timed(operation string) func() {
	start := time.Now()
	l.Debug("operation started", zap.String("operation", operation))
	return func() {
		l.Debug("operation completed",
			zap.String("operation", operation),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}
