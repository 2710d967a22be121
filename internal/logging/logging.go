// Package logging provides structured logging with per-request trace IDs.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// Logger wraps logrus with service scoping and trace-ID plumbing.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named service at the given level. Unknown
// levels fall back to info.
func New(service, level string) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)

	return &Logger{entry: base.WithField("service", service)}
}

// NewDefault creates an info-level logger, used where config is unavailable.
func NewDefault(service string) *Logger {
	return New(service, "info")
}

// NewTraceID generates a fresh trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID stores a trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, empty when absent.
func GetTraceID(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext annotates the entry with the context's trace ID.
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	if traceID := GetTraceID(ctx); traceID != "" {
		return l.entry.WithField("trace_id", traceID)
	}
	return l.entry
}

// WithError annotates the entry with an error.
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.entry.WithError(err)
}

// WithField annotates the entry with a single field.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.entry.WithField(key, value)
}

// WithFields annotates the entry with several fields.
func (l *Logger) WithFields(fields map[string]any) *logrus.Entry {
	return l.entry.WithFields(logrus.Fields(fields))
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.entry.Infof(format, args...) }

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, args ...any) { l.entry.Warnf(format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// Fatalf logs at fatal level and exits.
func (l *Logger) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }

// LogRequest logs one completed HTTP request. Server faults log at error,
// everything else at info.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	entry := l.WithContext(ctx).WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	})
	if status >= 500 {
		entry.Error("request completed")
		return
	}
	entry.Info("request completed")
}
