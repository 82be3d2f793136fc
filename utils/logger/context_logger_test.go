package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return logEntry
}

func TestContextLogger_WithContext_AllKeys(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = WithUserID(ctx, "user-456")
	ctx = WithOrganization(ctx, "acme")
	ctx = WithOperation(ctx, "login")

	cl.WithContext(ctx).Info("test message")
	logEntry := decode(t, &buf)

	tests := []struct {
		key      string
		expected string
	}{
		{"request_id", "req-123"},
		{"user_id", "user-456"},
		{"organization", "acme"},
		{"operation", "login"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := logEntry[tt.key]
			if !ok {
				t.Errorf("expected key %q to be present in log", tt.key)
				return
			}
			if got != tt.expected {
				t.Errorf("expected %q to be %q, got %q", tt.key, tt.expected, got)
			}
		})
	}
}

func TestContextLogger_WithContext_PartialKeys(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := WithUserID(context.Background(), "user-only")

	cl.WithContext(ctx).Info("test message")
	logEntry := decode(t, &buf)

	if got, ok := logEntry["user_id"]; !ok || got != "user-only" {
		t.Errorf("expected user_id to be 'user-only', got %v", got)
	}

	for _, key := range []string{"request_id", "organization", "operation"} {
		if _, ok := logEntry[key]; ok {
			t.Errorf("expected key %q to not be present in log", key)
		}
	}
}

func TestContextLogger_LogDuration(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx := WithUserID(context.Background(), "user-timing")

	cl.LogDuration(ctx, "session_validate", 25*time.Millisecond)
	logEntry := decode(t, &buf)

	if got := logEntry["operation"]; got != "session_validate" {
		t.Errorf("expected operation to be 'session_validate', got %v", got)
	}
	if got := logEntry["duration_ms"]; got != float64(25) {
		t.Errorf("expected duration_ms to be 25, got %v", got)
	}
	if got := logEntry["user_id"]; got != "user-timing" {
		t.Errorf("expected user_id to be 'user-timing', got %v", got)
	}
	if got := logEntry["level"]; got != "DEBUG" {
		t.Errorf("expected level DEBUG, got %v", got)
	}
}

func TestContextLogger_LogDuration_SingleOperationKey(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cl.LogDuration(WithOperation(context.Background(), "users.me"), "users.me", time.Millisecond)

	if n := strings.Count(buf.String(), `"operation"`); n != 1 {
		t.Errorf("expected one operation key, got %d in %s", n, buf.String())
	}
}

func TestContextLogger_NilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	var cl *ContextLogger
	cl.LogError(context.Background(), "users.me", errors.New("boom"))

	if !strings.Contains(buf.String(), `"operation":"users.me"`) {
		t.Errorf("expected record through slog.Default, got %s", buf.String())
	}
}

func TestContextLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	cl := NewContextLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx := WithUserID(context.Background(), "user-error")

	cl.LogError(ctx, "token_refresh_failed", errors.New("backend unavailable"))
	logEntry := decode(t, &buf)

	if got := logEntry["operation"]; got != "token_refresh_failed" {
		t.Errorf("expected operation to be 'token_refresh_failed', got %v", got)
	}
	if got := logEntry["error"]; got != "backend unavailable" {
		t.Errorf("expected error to be 'backend unavailable', got %v", got)
	}
	if got := logEntry["level"]; got != "ERROR" {
		t.Errorf("expected level ERROR, got %v", got)
	}
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "test-user")

	if got := ctx.Value(UserIDKey); got != "test-user" {
		t.Errorf("expected 'test-user', got %v", got)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-request")

	if got := ctx.Value(RequestIDKey); got != "test-request" {
		t.Errorf("expected 'test-request', got %v", got)
	}
}

func TestWithOrganization(t *testing.T) {
	ctx := WithOrganization(context.Background(), "acme")

	if got := ctx.Value(OrganizationKey); got != "acme" {
		t.Errorf("expected 'acme', got %v", got)
	}
}
