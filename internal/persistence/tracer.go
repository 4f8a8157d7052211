package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapQueryLogger forwards pgx trace events to zap.
type zapQueryLogger struct {
	logger *zap.Logger
}

func (l zapQueryLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	fields := make([]zap.Field, 0, len(data))
	for k, v := range data {
		// Query arguments may carry password hashes and emails.
		if k == "args" {
			continue
		}
		fields = append(fields, zap.Any(k, v))
	}
	l.logger.Log(zapLevel(level), msg, fields...)
}

func zapLevel(level tracelog.LogLevel) zapcore.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return zapcore.DebugLevel
	case tracelog.LogLevelInfo:
		return zapcore.InfoLevel
	case tracelog.LogLevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// newQueryTracer logs failed queries, and every query when the logger is at
// debug level.
func newQueryTracer(logger *zap.Logger) *tracelog.TraceLog {
	level := tracelog.LogLevelError
	if logger.Core().Enabled(zapcore.DebugLevel) {
		level = tracelog.LogLevelDebug
	}
	return &tracelog.TraceLog{
		Logger:   zapQueryLogger{logger: logger.Named("pgx")},
		LogLevel: level,
	}
}
