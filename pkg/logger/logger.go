package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with key/value style helpers
type Logger struct {
	*zap.Logger
}

// Options controls how a Logger is built
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	// Output is a file path or "stderr"/"stdout". The terminal client logs to a
	// file so log lines never land on top of the rendered screen.
	Output string
}

// New creates a logger writing to stderr with the given level and format
func New(level, format string) (*Logger, error) {
	return NewWithOptions(Options{Level: level, Format: format})
}

// NewWithOptions creates a logger from Options
func NewWithOptions(opts Options) (*Logger, error) {
	var zapConfig zap.Config
	if opts.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zapLevel, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Output != "" {
		zapConfig.OutputPaths = []string{opts.Output}
		zapConfig.ErrorOutputPaths = []string{opts.Output}
	}

	zapLogger, err := zapConfig.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{Logger: zapLogger}, nil
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without a logger.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// WithError returns a logger with an error field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With(zap.Error(err))}
}

// WithComponent returns a logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(zap.String("component", component))}
}

// WithRequestID returns a logger tagged with a request id
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{Logger: l.With(zap.String("request_id", id))}
}

// Info logs a message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, convertToFields(keysAndValues)...)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, convertToFields(keysAndValues)...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, convertToFields(keysAndValues)...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, convertToFields(keysAndValues)...)
}

func convertToFields(keysAndValues []interface{}) []zap.Field {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make([]zap.Field, 0, len(keysAndValues)/2+1)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 >= len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprint(keysAndValues[i]), nil))
			break
		}

		key := fmt.Sprint(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case int:
			fields = append(fields, zap.Int(key, v))
		case int64:
			fields = append(fields, zap.Int64(key, v))
		case uint64:
			fields = append(fields, zap.Uint64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		case time.Duration:
			fields = append(fields, zap.Duration(key, v))
		case error:
			fields = append(fields, zap.NamedError(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	return fields
}
