package event

import (
	"context"
	"time"

	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"go.uber.org/zap"
)

// Next continues with the next interceptor, or the listeners
type Next func(ctx context.Context, e *Event) error

// Interceptor wraps the listener loop of every dispatch that has listeners
// Can be used for logging, error translation or filtering; not calling next skips the listeners
type Interceptor func(ctx context.Context, e *Event, next Next) error

// LoggingInterceptor logs one debug entry per dispatch
func LoggingInterceptor(l *logger.CtxZapLogger) Interceptor {
	return func(ctx context.Context, e *Event, next Next) error {
		start := time.Now()
		err := next(ctx, e)

		fields := []zap.Field{
			zap.String("event_type", e.Type()),
			zap.String("event_id", e.ID()),
			zap.Duration("duration", time.Since(start)),
			zap.Bool("stopped", e.IsImmediatePropagationStopped()),
		}
		if err != nil {
			l.WarnCtx(ctx, "event dispatch failed", append(fields, zap.Error(err))...)
			return err
		}
		l.DebugCtx(ctx, "event dispatched", fields...)
		return nil
	}
}
