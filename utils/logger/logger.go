package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
)

// Redacted replaces the value of any attribute whose key names a credential.
const Redacted = "[REDACTED]"

// sensitiveKeys are attribute keys whose values never reach a log sink.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"access_token":  {},
	"refresh_token": {},
	"session_token": {},
	"csrf_token":    {},
	"authorization": {},
	"cookie":        {},
}

// Options configures Init.
type Options struct {
	Service     string
	Version     string
	Environment string
	// Level is a LOG_LEVEL value; unknown or empty means info.
	Level string
	// ExportOTel adds the OTel log bridge next to stdout.
	ExportOTel bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// OptionsFromEnv reads LOG_LEVEL and APP_ENV.
func OptionsFromEnv(service, version string, exportOTel bool) Options {
	return Options{
		Service:     service,
		Version:     version,
		Environment: os.Getenv("APP_ENV"),
		Level:       os.Getenv("LOG_LEVEL"),
		ExportOTel:  exportOTel,
	}
}

// Init builds the process logger, installs it as the slog default and points
// GlobalContext at it. Every record carries service, version and env.
func Init(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	GlobalContext = NewContextLogger(logger)
	return logger
}

// New builds a logger without installing it.
func New(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlers := []slog.Handler{
		NewTraceContextHandler(slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redact,
		})),
	}
	if opts.ExportOTel {
		handlers = append(handlers, NewOTelHandler(opts.Service, level))
	}

	var handler slog.Handler = handlers[0]
	if len(handlers) > 1 {
		handler = NewMultiHandler(handlers...)
	}

	attrs := make([]any, 0, 6)
	for _, kv := range [][2]string{{"service", opts.Service}, {"version", opts.Version}, {"env", opts.Environment}} {
		if kv[1] != "" {
			attrs = append(attrs, kv[0], kv[1])
		}
	}
	return slog.New(handler).With(attrs...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if isSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

// OTelHandler exports records through the global OTel LoggerProvider.
type OTelHandler struct {
	logger log.Logger
	attrs  []slog.Attr
	groups []string
	level  slog.Level
}

// NewOTelHandler creates a bridge whose instrumentation scope is name.
func NewOTelHandler(name string, level slog.Level) *OTelHandler {
	if name == "" {
		name = "admin-hub"
	}
	return &OTelHandler{
		logger: global.GetLoggerProvider().Logger(name),
		level:  level,
	}
}

func (h *OTelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *OTelHandler) Handle(ctx context.Context, r slog.Record) error {
	rec := log.Record{}
	rec.SetTimestamp(r.Time)
	rec.SetObservedTimestamp(time.Now())
	rec.SetBody(log.StringValue(r.Message))
	rec.SetSeverity(otelSeverity(r.Level))
	rec.SetSeverityText(r.Level.String())

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttributes(
			log.String("trace_id", sc.TraceID().String()),
			log.String("span_id", sc.SpanID().String()),
		)
	}

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		rec.AddAttributes(otelAttrs(prefix, a)...)
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttributes(otelAttrs(prefix, a)...)
		return true
	})

	h.logger.Emit(ctx, rec)
	return nil
}

func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *OTelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func otelSeverity(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	default:
		return log.SeverityDebug
	}
}

// otelAttrs converts a slog attribute, flattening groups into dotted keys.
func otelAttrs(prefix string, a slog.Attr) []log.KeyValue {
	a.Value = a.Value.Resolve()
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if isSensitive(a.Key) {
		return []log.KeyValue{log.String(key, Redacted)}
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		var out []log.KeyValue
		for _, ga := range a.Value.Group() {
			out = append(out, otelAttrs(key, ga)...)
		}
		return out
	case slog.KindString:
		return []log.KeyValue{log.String(key, a.Value.String())}
	case slog.KindInt64:
		return []log.KeyValue{log.Int64(key, a.Value.Int64())}
	case slog.KindUint64:
		return []log.KeyValue{log.Int64(key, int64(a.Value.Uint64()))}
	case slog.KindFloat64:
		return []log.KeyValue{log.Float64(key, a.Value.Float64())}
	case slog.KindBool:
		return []log.KeyValue{log.Bool(key, a.Value.Bool())}
	case slog.KindDuration:
		return []log.KeyValue{log.Int64(key+"_ms", a.Value.Duration().Milliseconds())}
	case slog.KindTime:
		return []log.KeyValue{log.String(key, a.Value.Time().Format(time.RFC3339Nano))}
	default:
		if err, ok := a.Value.Any().(error); ok {
			return []log.KeyValue{log.String(key, err.Error())}
		}
		return []log.KeyValue{log.String(key, a.Value.String())}
	}
}

// MultiHandler fans a record out to every handler that accepts its level.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}
