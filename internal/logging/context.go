package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	commandKey
)

// GenerateRequestID returns a time-ordered request ID (UUIDv7) so log lines
// of one process sort by start time.
func GenerateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithCommand returns a copy of ctx naming the CLI command or HTTP route
// being served.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// NewRequestContext returns a background context with a fresh request ID.
func NewRequestContext() context.Context {
	return WithRequestID(context.Background(), GenerateRequestID())
}

// RequestIDFromContext returns the request ID of ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// CommandFromContext returns the command name of ctx, or "".
func CommandFromContext(ctx context.Context) string {
	return stringValue(ctx, commandKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}

// LoggerFromContext returns the default logger annotated with the request
// ID and command carried by ctx.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(KeyRequestID, id)
	}
	if cmd := CommandFromContext(ctx); cmd != "" {
		logger = logger.With(KeyCommand, cmd)
	}
	return logger
}
