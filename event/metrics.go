package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventMetricsConfig selects the instruments EventMetrics creates
type EventMetricsConfig struct {
	Enabled             bool
	RecordListenerCount bool // adds the event_listeners gauge
}

// EventMetrics dispatch instruments, a component.MetricsProvider
//
// Recording is a no-op until RegisterMetrics succeeds; a nil *EventMetrics records nothing.
type EventMetrics struct {
	config EventMetricsConfig

	once sync.Once
	err  error
	inst atomic.Pointer[eventInstruments]

	listenerCount atomic.Pointer[func() int64]
}

type eventInstruments struct {
	dispatched metric.Int64Counter         // event_dispatched_total{event_type,stopped,failed}
	handled    metric.Int64Counter         // event_handled_total{event_type,result}
	duration   metric.Float64Histogram     // event_dispatch_duration_seconds
	listeners  metric.Int64ObservableGauge // event_listeners, optional
}

func NewEventMetrics(cfg EventMetricsConfig) *EventMetrics {
	return &EventMetrics{config: cfg}
}

func (m *EventMetrics) MetricsName() string    { return "event" }
func (m *EventMetrics) IsMetricsEnabled() bool { return m.config.Enabled }

// RegisterMetrics creates the instruments on meter; only the first call has effect
func (m *EventMetrics) RegisterMetrics(meter metric.Meter) error {
	m.once.Do(func() {
		inst, err := m.newInstruments(meter)
		if err != nil {
			m.err = err
			return
		}
		m.inst.Store(inst)
	})
	return m.err
}

func (m *EventMetrics) newInstruments(meter metric.Meter) (*eventInstruments, error) {
	var (
		inst eventInstruments
		err  error
	)
	if inst.dispatched, err = meter.Int64Counter("event_dispatched_total",
		metric.WithDescription("Events dispatched"),
		metric.WithUnit("{event}")); err != nil {
		return nil, err
	}
	if inst.handled, err = meter.Int64Counter("event_handled_total",
		metric.WithDescription("Listener invocations by outcome"),
		metric.WithUnit("{invocation}")); err != nil {
		return nil, err
	}
	if inst.duration, err = meter.Float64Histogram("event_dispatch_duration_seconds",
		metric.WithDescription("Time spent dispatching one event"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.config.RecordListenerCount {
		if inst.listeners, err = meter.Int64ObservableGauge("event_listeners",
			metric.WithDescription("Listeners currently attached"),
			metric.WithUnit("{listener}"),
			metric.WithInt64Callback(m.observeListeners)); err != nil {
			return nil, err
		}
	}
	return &inst, nil
}

func (m *EventMetrics) observeListeners(_ context.Context, o metric.Int64Observer) error {
	if fn := m.listenerCount.Load(); fn != nil {
		o.Observe((*fn)())
	}
	return nil
}

// SetListenerCountCallback source of the event_listeners gauge
func (m *EventMetrics) SetListenerCountCallback(fn func() int64) {
	if m == nil || fn == nil {
		return
	}
	m.listenerCount.Store(&fn)
}

func (m *EventMetrics) instruments() *eventInstruments {
	if m == nil {
		return nil
	}
	return m.inst.Load()
}

// IsRegistered whether recording is live
func (m *EventMetrics) IsRegistered() bool {
	return m.instruments() != nil
}

// RecordDispatched one finished dispatch
func (m *EventMetrics) RecordDispatched(ctx context.Context, eventType string, d time.Duration, stopped, failed bool) {
	inst := m.instruments()
	if inst == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.Bool("stopped", stopped),
		attribute.Bool("failed", failed),
	)
	inst.dispatched.Add(ctx, 1, attrs)
	inst.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordHandled one listener invocation; result is one of ok, stopped, error, panic
func (m *EventMetrics) RecordHandled(ctx context.Context, eventType, result string) {
	inst := m.instruments()
	if inst == nil {
		return
	}
	inst.handled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("result", result),
	))
}
