package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.uber.org/zap"
)

// newResource service identity plus host, process and SDK detectors
func (m *Manager) newResource(ctx context.Context) (*resource.Resource, error) {
	attrs := append([]attribute.KeyValue{
		semconv.ServiceName(m.config.ServiceName),
		semconv.ServiceVersion(m.config.ServiceVersion),
	}, resourceAttributes(m.config.ResourceAttrs)...)

	res, err := resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithHost(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
	)
	if errors.Is(err, resource.ErrPartialResource) {
		m.logger.WarnCtx(ctx, "partial telemetry resource", zap.Error(err))
		return res, nil
	}
	return res, err
}

// resourceAttributes flattens nested maps into dotted keys, sorted by key
// String values expand $VAR references from the environment
func resourceAttributes(values map[string]interface{}) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for key, value := range m {
			if prefix != "" {
				key = prefix + "." + key
			}
			switch v := value.(type) {
			case map[string]interface{}:
				walk(key, v)
			case string:
				attrs = append(attrs, attribute.String(key, os.ExpandEnv(v)))
			default:
				attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
			}
		}
	}
	walk("", values)
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs
}
