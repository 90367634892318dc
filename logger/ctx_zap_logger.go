package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CtxZapLogger zap logger bound to a module
// The *Ctx methods add app_name and, when enabled, the trace ID found in ctx.
type CtxZapLogger struct {
	base   *zap.Logger
	module string
	config *ManagerConfig
}

// NewCtxZapLogger wraps a caller owned zap logger with default enrichment
func NewCtxZapLogger(base *zap.Logger, module string) *CtxZapLogger {
	cfg := DefaultManagerConfig()
	return &CtxZapLogger{base: base.With(zap.String("module", module)), module: module, config: &cfg}
}

// NewNopLogger discards everything
func NewNopLogger() *CtxZapLogger {
	return NewCtxZapLogger(zap.NewNop(), "nop")
}

func (l *CtxZapLogger) Module() string { return l.module }

func (l *CtxZapLogger) GetZapLogger() *zap.Logger { return l.base }

func (l *CtxZapLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	if ce := l.base.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(l.enrich(ctx, fields)...)
	}
}

func (l *CtxZapLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	if ce := l.base.Check(zap.InfoLevel, msg); ce != nil {
		ce.Write(l.enrich(ctx, fields)...)
	}
}

func (l *CtxZapLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	if ce := l.base.Check(zap.WarnLevel, msg); ce != nil {
		ce.Write(l.enrich(ctx, fields)...)
	}
}

func (l *CtxZapLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	if ce := l.base.Check(zap.ErrorLevel, msg); ce != nil {
		ce.Write(l.enrich(ctx, fields)...)
	}
}

func (l *CtxZapLogger) Debug(msg string, fields ...zap.Field) {
	l.DebugCtx(context.Background(), msg, fields...)
}

func (l *CtxZapLogger) Info(msg string, fields ...zap.Field) {
	l.InfoCtx(context.Background(), msg, fields...)
}

func (l *CtxZapLogger) Warn(msg string, fields ...zap.Field) {
	l.WarnCtx(context.Background(), msg, fields...)
}

func (l *CtxZapLogger) Error(msg string, fields ...zap.Field) {
	l.ErrorCtx(context.Background(), msg, fields...)
}

// With returns a child logger carrying fields
func (l *CtxZapLogger) With(fields ...zap.Field) *CtxZapLogger {
	child := *l
	child.base = l.base.With(fields...)
	return &child
}

func (l *CtxZapLogger) enrich(ctx context.Context, fields []zap.Field) []zap.Field {
	if l.config == nil {
		return fields
	}
	out := make([]zap.Field, 0, len(fields)+2)
	out = append(out, zap.String("app_name", l.config.AppName))
	if l.config.EnableTraceID {
		if id := traceIDFrom(ctx, l.config.TraceIDKey); id != "" {
			name := l.config.TraceIDFieldName
			if name == "" {
				name = "trace_id"
			}
			out = append(out, zap.String(name, id))
		}
	}
	return append(out, fields...)
}

// traceIDFrom prefers a valid span, then ctx.Value(key), then ctx.Value("trace_id")
func traceIDFrom(ctx context.Context, key string) string {
	if ctx == nil {
		return ""
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	for _, k := range []string{key, "trace_id"} {
		if k == "" {
			continue
		}
		if id, ok := ctx.Value(k).(string); ok {
			return id
		}
	}
	return ""
}
