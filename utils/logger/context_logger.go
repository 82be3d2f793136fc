package logger

import (
	"context"
	"log/slog"
	"time"
)

type ContextKey string

const (
	RequestIDKey    ContextKey = "request_id"
	UserIDKey       ContextKey = "user_id"
	OrganizationKey ContextKey = "organization"
	OperationKey    ContextKey = "operation"
)

// contextKeys lists the keys copied into log records, in output order.
var contextKeys = []ContextKey{RequestIDKey, UserIDKey, OrganizationKey, OperationKey}

// GlobalContext is set by Init. A nil ContextLogger logs through slog.Default.
var GlobalContext *ContextLogger

type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

func (cl *ContextLogger) base() *slog.Logger {
	if cl == nil || cl.logger == nil {
		return slog.Default()
	}
	return cl.logger
}

// WithContext returns a logger carrying the request-scoped values found in ctx.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0, 2*len(contextKeys))
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			args = append(args, string(key), v)
		}
	}
	return cl.base().With(args...)
}

// LogDuration records a completed operation at debug level.
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, duration time.Duration) {
	ctx = WithOperation(ctx, operation)
	cl.WithContext(ctx).DebugContext(ctx, "operation completed",
		"duration_ms", duration.Milliseconds(),
	)
}

func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	ctx = WithOperation(ctx, operation)
	cl.WithContext(ctx).ErrorContext(ctx, "operation failed",
		"error", err,
	)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func WithOrganization(ctx context.Context, shortcode string) context.Context {
	return context.WithValue(ctx, OrganizationKey, shortcode)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}
