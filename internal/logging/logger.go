// Package logging provides structured logging for Chronos.
// It uses Go's standard library slog for structured logging with JSON output support.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	// defaultLogger is the package-level logger instance.
	defaultLogger *slog.Logger
	loggerMu      sync.RWMutex

	// Debug indicates if debug mode is enabled.
	Debug bool
)

func init() {
	// Quiet by default: the CLI prints its own output on stdout.
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       slog.LevelWarn,
		ReplaceAttr: maskAttr,
	}))
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level // Minimum log level
	JSON      bool       // Use JSON output format
	Output    io.Writer  // Output destination (default: stderr)
	AddSource bool       // Include source file and line number
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		JSON:   false,
		Output: os.Stderr,
	}
}

// DebugConfig returns a configuration suitable for debug mode.
func DebugConfig() Config {
	return Config{
		Level:     slog.LevelDebug,
		JSON:      true,
		Output:    os.Stderr,
		AddSource: true,
	}
}

// ServerConfig returns the configuration used by 'chronos serve'.
func ServerConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		JSON:   false,
		Output: os.Stderr,
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       cfg.Level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: maskAttr,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	Debug = cfg.Level == slog.LevelDebug
}

// InitDebug initializes the logger in debug mode with JSON output.
func InitDebug() {
	Init(DebugConfig())
}

// Logger returns the current logger instance.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// DebugLog logs at DEBUG level.
func DebugLog(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// DebugContext logs at DEBUG level with the request ID from ctx.
func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).DebugContext(ctx, msg, args...)
}

// InfoContext logs at INFO level with the request ID from ctx.
func InfoContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).InfoContext(ctx, msg, args...)
}

// WarnContext logs at WARN level with the request ID from ctx.
func WarnContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).WarnContext(ctx, msg, args...)
}

// Common structured logging fields.
const (
	KeyRequestID = "request_id"
	KeyOperation = "op"
	KeyCommand   = "command"
	KeyDuration  = "duration_ms"
	KeyError     = "error"
	KeyNamespace = "namespace"
	KeyBytes     = "bytes"
	KeyBlobID    = "blob_id"
	KeyTaskID    = "task_id"
	KeyLogID     = "log_id"
	KeyEmail     = "email"
	KeyStatus    = "status"
	KeyCount     = "count"
)

// LogOperation logs an operation and how long it took since start.
// Usage: defer LogOperation(ctx, "write", start, KeyNamespace, ns)
func LogOperation(ctx context.Context, op string, start time.Time, args ...any) {
	allArgs := append([]any{KeyOperation, op, KeyDuration, time.Since(start).Milliseconds()}, args...)
	LoggerFromContext(ctx).DebugContext(ctx, "operation", allArgs...)
}
