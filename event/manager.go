package event

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/KOMKZ/go-yogan-eventmanager/event"

// Handled results recorded per listener invocation
const (
	resultOK      = "ok"
	resultStopped = "stopped"
	resultError   = "error"
	resultPanic   = "panic"
)

// DetachFunc removes a single listener registration
type DetachFunc func()

// EventManager owns a registry of event type -> priority-ordered listeners
// Every instance is independent; share one instance explicitly to share a bus
type EventManager struct {
	mu              sync.RWMutex
	queues          map[string]*listenerQueue
	interceptors    []Interceptor
	nextID          uint64
	defaultPriority int

	logger  *logger.CtxZapLogger
	metrics *EventMetrics
	tracer  trace.Tracer
}

// NewEventManager creates an empty event manager
func NewEventManager(opts ...ManagerOption) *EventManager {
	m := &EventManager{
		queues:          make(map[string]*listenerQueue),
		defaultPriority: DefaultPriority,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logger.GetLogger("event")
	}
	if m.tracer == nil {
		m.tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	if m.metrics != nil {
		m.metrics.SetListenerCountCallback(m.totalListeners)
	}

	return m
}

// Attach registers a listener for an event type
// Attaching the same listener twice creates two independent registrations
func (m *EventManager) Attach(eventType string, listener Listener, opts ...AttachOption) (DetachFunc, error) {
	if eventType == "" {
		return nil, ErrInvalidEventType
	}
	if !validListener(listener) {
		return nil, ErrInvalidListener.WithData("event_type", eventType)
	}

	entry := listenerEntry{
		listener: listener,
		priority: m.defaultPriority,
	}
	for _, opt := range opts {
		opt(&entry)
	}

	m.mu.Lock()
	m.nextID++
	entry.id = m.nextID
	q, ok := m.queues[eventType]
	if !ok {
		q = &listenerQueue{}
		m.queues[eventType] = q
	}
	q.insert(entry)
	m.mu.Unlock()

	m.logger.Debug("listener attached",
		zap.String("event_type", eventType),
		zap.Uint64("listener_id", entry.id),
		zap.Int("priority", entry.priority),
		zap.Bool("once", entry.once))

	id := entry.id
	return func() {
		m.removeEntry(eventType, id)
	}, nil
}

// AttachFunc registers a function listener
func (m *EventManager) AttachFunc(eventType string, fn ListenerFunc, opts ...AttachOption) (DetachFunc, error) {
	if fn == nil {
		return nil, ErrInvalidListener.WithData("event_type", eventType)
	}
	return m.Attach(eventType, fn, opts...)
}

// Detach removes every listener of an event type; no-op if none are registered
func (m *EventManager) Detach(eventType string) {
	m.mu.Lock()
	_, ok := m.queues[eventType]
	delete(m.queues, eventType)
	m.mu.Unlock()

	if ok {
		m.logger.Debug("listeners detached", zap.String("event_type", eventType))
	}
}

// DetachAll clears the whole registry
func (m *EventManager) DetachAll() {
	m.mu.Lock()
	n := len(m.queues)
	m.queues = make(map[string]*listenerQueue)
	m.mu.Unlock()

	m.logger.Debug("all listeners detached", zap.Int("event_types", n))
}

// removeEntry removes one registration, dropping the type once it is empty
// so a fully detached type behaves like one that was never attached
func (m *EventManager) removeEntry(eventType string, id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.queues[eventType]
	if !ok || !q.remove(id) {
		return false
	}
	if q.len() == 0 {
		delete(m.queues, eventType)
	}
	return true
}

// Use registers a global interceptor
func (m *EventManager) Use(interceptor Interceptor) {
	if interceptor == nil {
		return
	}
	m.mu.Lock()
	m.interceptors = append(m.interceptors, interceptor)
	m.mu.Unlock()
}

// Dispatch creates an event and runs the listeners of its type synchronously
//
// Listeners run in descending priority, equal priorities in attach order.
// After each listener its return value becomes the event result; the loop ends
// early once propagation is stopped. A failing or panicking listener aborts the
// loop and its error is returned together with the event.
// An event type without listeners is not an error.
func (m *EventManager) Dispatch(ctx context.Context, eventType string, subject, data any, opts ...DispatchOption) (*Event, error) {
	options := defaultDispatchOptions()
	for _, opt := range opts {
		opt(&options)
	}

	e := NewEvent(eventType, subject, data, WithCancelable(options.cancelable))
	start := time.Now()

	m.mu.RLock()
	var entries []listenerEntry
	if q, ok := m.queues[eventType]; ok {
		entries = q.snapshot()
	}
	interceptors := slices.Clone(m.interceptors)
	m.mu.RUnlock()

	if len(entries) == 0 {
		m.metrics.RecordDispatched(ctx, eventType, time.Since(start), e.IsImmediatePropagationStopped(), false)
		return e, nil
	}

	ctx, span := m.tracer.Start(ctx, "event.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("event.type", eventType),
			attribute.String("event.id", e.ID()),
			attribute.Int("event.listeners", len(entries)),
		))
	defer span.End()

	err := m.buildHandlerChain(entries, interceptors)(ctx, e)

	span.SetAttributes(attribute.Bool("event.stopped", e.IsImmediatePropagationStopped()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	m.metrics.RecordDispatched(ctx, eventType, time.Since(start), e.IsImmediatePropagationStopped(), err != nil)

	return e, err
}

// buildHandlerChain interceptors wrap the listener loop, first registered is outermost
func (m *EventManager) buildHandlerChain(entries []listenerEntry, interceptors []Interceptor) Next {
	handler := func(ctx context.Context, e *Event) error {
		return m.executeListeners(ctx, e, entries)
	}

	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor := interceptors[i]
		next := handler
		handler = func(ctx context.Context, e *Event) error {
			return interceptor(ctx, e, next)
		}
	}

	return handler
}

// executeListeners the dispatch loop
func (m *EventManager) executeListeners(ctx context.Context, e *Event, entries []listenerEntry) error {
	for _, entry := range entries {
		// claim before running so a once listener cannot run twice,
		// even when a listener re-dispatches the same type
		if entry.once && !m.removeEntry(e.Type(), entry.id) {
			continue
		}

		result, panicked, err := m.invoke(ctx, e, entry)
		switch {
		case panicked:
			m.metrics.RecordHandled(ctx, e.Type(), resultPanic)
			m.logger.ErrorCtx(ctx, "listener panicked",
				zap.String("event_type", e.Type()),
				zap.Uint64("listener_id", entry.id),
				zap.Error(err))
			return err

		case err == nil:
			e.SetResult(result)
			m.metrics.RecordHandled(ctx, e.Type(), resultOK)

		case errors.Is(err, ErrStopPropagation):
			e.SetResult(result)
			if stopErr := e.StopPropagation(); stopErr != nil {
				m.logger.WarnCtx(ctx, "listener asked to stop a non-cancelable event",
					zap.String("event_type", e.Type()),
					zap.Uint64("listener_id", entry.id))
			}
			m.metrics.RecordHandled(ctx, e.Type(), resultStopped)

		default:
			m.metrics.RecordHandled(ctx, e.Type(), resultError)
			m.logger.ErrorCtx(ctx, "listener failed",
				zap.String("event_type", e.Type()),
				zap.Uint64("listener_id", entry.id),
				zap.Error(err))
			return ErrListenerFailed.Wrap(err).
				WithData("event_type", e.Type()).
				WithData("listener_id", entry.id)
		}

		if e.IsImmediatePropagationStopped() {
			break
		}
	}

	return nil
}

// invoke calls one listener, turning a panic into ErrListenerPanic
func (m *EventManager) invoke(ctx context.Context, e *Event, entry listenerEntry) (result any, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			panicked = true
			err = ErrListenerPanic.
				WithMsgf("listener panicked: %v", r).
				WithData("event_type", e.Type()).
				WithData("listener_id", entry.id)
		}
	}()

	result, err = entry.listener.Handle(ctx, e)
	return result, false, err
}

// ListenerCount number of listeners registered for an event type
func (m *EventManager) ListenerCount(eventType string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if q, ok := m.queues[eventType]; ok {
		return q.len()
	}
	return 0
}

// HasListeners reports whether an event type has at least one listener
func (m *EventManager) HasListeners(eventType string) bool {
	return m.ListenerCount(eventType) > 0
}

// EventTypes sorted list of event types with listeners
func (m *EventManager) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.queues))
}

// totalListeners feeds the listener gauge
func (m *EventManager) totalListeners() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, q := range m.queues {
		total += int64(q.len())
	}
	return total
}

// String debug representation
func (m *EventManager) String() string {
	return fmt.Sprintf("EventManager{types:%d, listeners:%d}", len(m.EventTypes()), m.totalListeners())
}
