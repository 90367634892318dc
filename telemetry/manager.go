// Package telemetry builds the OpenTelemetry trace and metric pipelines
// used to observe event dispatch.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Manager owns the TracerProvider and MeterProvider
type Manager struct {
	config         Config
	logger         *logger.CtxZapLogger
	writer         io.Writer
	setGlobal      bool
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	mu             sync.RWMutex
}

// Option Manager options
type Option func(*Manager)

// WithWriter destination of the stdout exporters (default os.Stdout)
func WithWriter(w io.Writer) Option {
	return func(m *Manager) {
		if w != nil {
			m.writer = w
		}
	}
}

// WithGlobal whether Start installs the providers as otel globals (default true)
func WithGlobal(enabled bool) Option {
	return func(m *Manager) {
		m.setGlobal = enabled
	}
}

// NewManager creates the telemetry manager
func NewManager(config Config, log *logger.CtxZapLogger, opts ...Option) *Manager {
	if log == nil {
		log = logger.GetLogger("telemetry")
	}
	m := &Manager{
		config:    config,
		logger:    log,
		writer:    os.Stdout,
		setGlobal: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start builds the enabled pipelines
func (m *Manager) Start(ctx context.Context) error {
	if !m.config.Enabled {
		m.logger.InfoCtx(ctx, "telemetry disabled, skipping initialization")
		return nil
	}

	m.config.ApplyDefaults()
	if err := m.config.Validate(); err != nil {
		return err
	}

	res, err := m.newResource(ctx)
	if err != nil {
		return fmt.Errorf("create resource failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.Traces.Enabled {
		tp, err := m.newTracerProvider(ctx, res)
		if err != nil {
			return err
		}
		m.tracerProvider = tp
		if m.setGlobal {
			otel.SetTracerProvider(tp)
		}
	}

	if m.config.Metrics.Enabled {
		mp, err := m.newMeterProvider(ctx, res)
		if err != nil {
			return err
		}
		m.meterProvider = mp
		if m.setGlobal {
			otel.SetMeterProvider(mp)
		}
	}

	m.logger.InfoCtx(ctx, "telemetry started",
		zap.String("service_name", m.config.ServiceName),
		zap.String("exporter", m.config.Exporter.Type),
		zap.Bool("traces", m.tracerProvider != nil),
		zap.Bool("metrics", m.meterProvider != nil),
	)
	return nil
}

// Shutdown flushes and closes both providers
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.tracerProvider != nil {
		if err := m.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer provider failed: %w", err))
		}
		m.tracerProvider = nil
	}
	if m.meterProvider != nil {
		if err := m.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown meter provider failed: %w", err))
		}
		m.meterProvider = nil
	}
	return errors.Join(errs...)
}

// TracerProvider returns the SDK provider, or a noop one when traces are off
func (m *Manager) TracerProvider() trace.TracerProvider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tracerProvider == nil {
		return tracenoop.NewTracerProvider()
	}
	return m.tracerProvider
}

// MeterProvider returns the SDK provider, or a noop one when metrics are off
func (m *Manager) MeterProvider() metric.MeterProvider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.meterProvider == nil {
		return metricnoop.NewMeterProvider()
	}
	return m.meterProvider
}

// IsEnabled whether enabled
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// GetConfig Retrieve configuration
func (m *Manager) GetConfig() Config {
	return m.config
}
