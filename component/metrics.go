package component

import "go.opentelemetry.io/otel/metric"

// MetricsProvider a component that owns OpenTelemetry instruments
type MetricsProvider interface {
	// MetricsName names the Meter the instruments are created on
	MetricsName() string
	RegisterMetrics(meter metric.Meter) error
	IsMetricsEnabled() bool
}

// RegisterProvider creates provider's instruments on mp; disabled providers are skipped
func RegisterProvider(mp metric.MeterProvider, provider MetricsProvider) error {
	if mp == nil || provider == nil || !provider.IsMetricsEnabled() {
		return nil
	}
	return provider.RegisterMetrics(mp.Meter(provider.MetricsName()))
}
