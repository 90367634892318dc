package event

import (
	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPriority priority used when WithPriority is not given
const DefaultPriority = 10

// AttachOption listener registration options
type AttachOption func(*listenerEntry)

// WithPriority sets the priority
// The larger the number, the earlier the listener runs; equal priorities run in attach order
func WithPriority(priority int) AttachOption {
	return func(e *listenerEntry) {
		e.priority = priority
	}
}

// WithOnce the listener runs at most once and is then detached automatically
func WithOnce() AttachOption {
	return func(e *listenerEntry) {
		e.once = true
	}
}

// ManagerOption EventManager configuration options
type ManagerOption func(*EventManager)

// WithLogger sets the logger (default: module "event" of the global logger manager)
func WithLogger(l *logger.CtxZapLogger) ManagerOption {
	return func(m *EventManager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics enables metric recording
func WithMetrics(metrics *EventMetrics) ManagerOption {
	return func(m *EventManager) {
		m.metrics = metrics
	}
}

// WithTracerProvider sets the provider used for dispatch spans (default: the global provider)
func WithTracerProvider(tp trace.TracerProvider) ManagerOption {
	return func(m *EventManager) {
		if tp != nil {
			m.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithDefaultPriority changes the priority used when WithPriority is not given
func WithDefaultPriority(priority int) ManagerOption {
	return func(m *EventManager) {
		m.defaultPriority = priority
	}
}

// WithInterceptors registers global interceptors at construction
func WithInterceptors(interceptors ...Interceptor) ManagerOption {
	return func(m *EventManager) {
		m.interceptors = append(m.interceptors, interceptors...)
	}
}
