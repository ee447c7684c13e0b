// Package zaplog adapts go.uber.org/zap to the pool's core.Logger interface,
// so services already using zap can route pool and worker lifecycle logs
// through their existing logging stack.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/gregl83/threaded/core"
)

// Logger forwards core.Logger calls to a zap.Logger.
type Logger struct {
	base *zap.Logger
}

var _ core.Logger = (*Logger)(nil)

// New wraps an existing zap logger. A nil logger falls back to zap.NewNop().
func New(base *zap.Logger) *Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return &Logger{base: base}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...core.Field) {
	l.base.Debug(msg, convert(fields)...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...core.Field) {
	l.base.Info(msg, convert(fields)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...core.Field) {
	l.base.Warn(msg, convert(fields)...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...core.Field) {
	l.base.Error(msg, convert(fields)...)
}

func convert(fields []core.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
