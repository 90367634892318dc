package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials/insecure"
)

// spanExporter nil for the noop exporter
func (m *Manager) spanExporter(ctx context.Context) (trace.SpanExporter, error) {
	exp := m.config.Exporter
	switch exp.Type {
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(exp.Endpoint),
			otlptracegrpc.WithTimeout(exp.Timeout),
			otlptracegrpc.WithHeaders(exp.Headers),
		}
		if exp.Insecure {
			opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	case ExporterStdout:
		opts := []stdouttrace.Option{stdouttrace.WithWriter(m.writer)}
		if exp.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		return stdouttrace.New(opts...)
	case ExporterNoop:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported exporter type: %s", exp.Type)
}

// metricExporter nil for the noop exporter
func (m *Manager) metricExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	exp := m.config.Exporter
	switch exp.Type {
	case ExporterOTLP:
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(exp.Endpoint),
			otlpmetricgrpc.WithTimeout(exp.Timeout),
			otlpmetricgrpc.WithHeaders(exp.Headers),
		}
		if exp.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	case ExporterStdout:
		opts := []stdoutmetric.Option{stdoutmetric.WithWriter(m.writer)}
		if exp.PrettyPrint {
			opts = append(opts, stdoutmetric.WithPrettyPrint())
		}
		return stdoutmetric.New(opts...)
	case ExporterNoop:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported exporter type: %s", exp.Type)
}
