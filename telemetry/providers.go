package telemetry

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// newTracerProvider exports synchronously unless batching is configured
func (m *Manager) newTracerProvider(ctx context.Context, res *resource.Resource) (*trace.TracerProvider, error) {
	exporter, err := m.spanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("create span exporter failed: %w", err)
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(m.sampler()),
	}
	switch {
	case exporter == nil:
	case m.config.Batch.Enabled:
		b := m.config.Batch
		opts = append(opts, trace.WithBatcher(exporter,
			trace.WithMaxQueueSize(b.MaxQueueSize),
			trace.WithMaxExportBatchSize(b.MaxExportBatchSize),
			trace.WithBatchTimeout(b.ScheduleDelay),
			trace.WithExportTimeout(b.ExportTimeout),
		))
	default:
		opts = append(opts, trace.WithSyncer(exporter))
	}
	return trace.NewTracerProvider(opts...), nil
}

// newMeterProvider collects periodically; Shutdown performs a final collection
func (m *Manager) newMeterProvider(ctx context.Context, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := m.metricExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter failed: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if exporter != nil {
		reader := sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.config.Metrics.ExportInterval),
			sdkmetric.WithTimeout(m.config.Metrics.ExportTimeout),
		)
		opts = append(opts, sdkmetric.WithReader(reader))
	}
	return sdkmetric.NewMeterProvider(opts...), nil
}

func (m *Manager) sampler() trace.Sampler {
	switch m.config.Sampler.Type {
	case SamplerAlwaysOn:
		return trace.AlwaysSample()
	case SamplerAlwaysOff:
		return trace.NeverSample()
	case SamplerRatio:
		return trace.TraceIDRatioBased(m.config.Sampler.Ratio)
	}
	return trace.ParentBased(trace.AlwaysSample())
}
