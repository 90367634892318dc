package event

import (
	"context"
	"fmt"

	"github.com/KOMKZ/go-yogan-eventmanager/component"
	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

var (
	_ component.Component       = (*Component)(nil)
	_ component.MetricsProvider = (*EventMetrics)(nil)
)

// Component event component
// Builds one EventManager from the "event" configuration section
type Component struct {
	manager *EventManager
	metrics *EventMetrics
	logger  *logger.CtxZapLogger
	config  Config

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// NewComponent creates the event component
func NewComponent() *Component {
	return &Component{}
}

// Name returns the component name
func (c *Component) Name() string {
	return component.ComponentEvent
}

// DependsOn returns the components this one depends on
func (c *Component) DependsOn() []string {
	return []string{
		component.ComponentConfig,
		component.ComponentLogger,
	}
}

// SetLogger overrides the logger (default: module "event" of the global manager)
func (c *Component) SetLogger(l *logger.CtxZapLogger) {
	c.logger = l
}

// SetMeterProvider overrides the global MeterProvider used when metrics are enabled
func (c *Component) SetMeterProvider(mp metric.MeterProvider) {
	c.meterProvider = mp
}

// SetTracerProvider overrides the global TracerProvider used when tracing is enabled
func (c *Component) SetTracerProvider(tp trace.TracerProvider) {
	c.tracerProvider = tp
}

// Init initializes the component
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	if c.logger == nil {
		c.logger = logger.GetLogger("event")
	}
	c.logger.DebugCtx(ctx, "event component initializing")

	c.config = DefaultConfig()
	if loader != nil && loader.IsSet("event") {
		if err := loader.Unmarshal("event", &c.config); err != nil {
			return ErrInvalidConfig.Wrap(err)
		}
	}

	if err := c.config.Validate(); err != nil {
		return err
	}

	if !c.config.Enabled {
		c.logger.InfoCtx(ctx, "event component disabled")
		return nil
	}

	opts := []ManagerOption{
		WithLogger(c.logger),
		WithDefaultPriority(c.config.DefaultPriority),
	}

	if c.config.Metrics.Enabled {
		c.metrics = NewEventMetrics(EventMetricsConfig{
			Enabled:             true,
			RecordListenerCount: c.config.Metrics.RecordListenerCount,
		})
		mp := c.meterProvider
		if mp == nil {
			mp = otel.GetMeterProvider()
		}
		if err := component.RegisterProvider(mp, c.metrics); err != nil {
			return fmt.Errorf("register event metrics failed: %w", err)
		}
		opts = append(opts, WithMetrics(c.metrics))
	}

	if c.config.Tracing.Enabled {
		tp := c.tracerProvider
		if tp == nil {
			tp = otel.GetTracerProvider()
		}
		opts = append(opts, WithTracerProvider(tp))
	} else {
		opts = append(opts, WithTracerProvider(noop.NewTracerProvider()))
	}

	if c.config.LogDispatch {
		opts = append(opts, WithInterceptors(LoggingInterceptor(c.logger)))
	}

	c.manager = NewEventManager(opts...)

	c.logger.InfoCtx(ctx, "event component initialized",
		zap.Int("default_priority", c.config.DefaultPriority),
		zap.Bool("metrics", c.metrics != nil),
		zap.Bool("tracing", c.config.Tracing.Enabled),
		zap.Bool("log_dispatch", c.config.LogDispatch),
	)
	return nil
}

// Start starts the component
func (c *Component) Start(ctx context.Context) error {
	return nil
}

// Stop detaches every listener, safe to call repeatedly
func (c *Component) Stop(ctx context.Context) error {
	if c.manager != nil {
		c.manager.DetachAll()
		c.logger.InfoCtx(ctx, "event component stopped")
	}
	return nil
}

// Shutdown stops the component when its injector shuts down
func (c *Component) Shutdown(ctx context.Context) error {
	return c.Stop(ctx)
}

// GetManager returns the event manager (nil when disabled or not initialized)
func (c *Component) GetManager() *EventManager {
	return c.manager
}

// GetMetrics returns the metrics provider (nil when metrics are disabled)
func (c *Component) GetMetrics() *EventMetrics {
	return c.metrics
}

func (c *Component) GetConfig() Config {
	return c.config
}

// IsEnabled whether the component produced a manager
func (c *Component) IsEnabled() bool {
	return c.config.Enabled && c.manager != nil
}
