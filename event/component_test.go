package event

import (
	"context"
	"errors"
	"testing"

	"github.com/KOMKZ/go-yogan-eventmanager/component"
	"github.com/KOMKZ/go-yogan-eventmanager/config"
	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// mockConfigLoader mock configuration loader
type mockConfigLoader struct {
	config *Config
	err    error
}

func (m *mockConfigLoader) Get(key string) interface{} { return nil }

func (m *mockConfigLoader) Unmarshal(key string, v interface{}) error {
	if m.err != nil {
		return m.err
	}
	if m.config != nil {
		if cfg, ok := v.(*Config); ok {
			*cfg = *m.config
		}
	}
	return nil
}

func (m *mockConfigLoader) GetString(key string) string { return "" }
func (m *mockConfigLoader) GetInt(key string) int       { return 0 }
func (m *mockConfigLoader) GetBool(key string) bool     { return false }
func (m *mockConfigLoader) IsSet(key string) bool       { return m.config != nil }

var _ component.ConfigLoader = (*mockConfigLoader)(nil)

func newTestComponent() *Component {
	c := NewComponent()
	c.SetLogger(logger.NewNopLogger())
	return c
}

func TestComponent_NameAndDependencies(t *testing.T) {
	c := NewComponent()
	assert.Equal(t, component.ComponentEvent, c.Name())
	assert.Equal(t, []string{component.ComponentConfig, component.ComponentLogger}, c.DependsOn())
}

func TestComponent_Init_Defaults(t *testing.T) {
	c := newTestComponent()

	err := c.Init(context.Background(), &mockConfigLoader{err: errors.New("key not set")})
	require.NoError(t, err)

	assert.True(t, c.IsEnabled())
	require.NotNil(t, c.GetManager())
	assert.Nil(t, c.GetMetrics())
	assert.Equal(t, DefaultConfig(), c.GetConfig())
	assert.Equal(t, DefaultPriority, c.GetManager().defaultPriority)
}

func TestComponent_Init_NilLoader(t *testing.T) {
	c := newTestComponent()
	require.NoError(t, c.Init(context.Background(), nil))
	assert.True(t, c.IsEnabled())
}

func TestComponent_Init_Disabled(t *testing.T) {
	c := newTestComponent()

	err := c.Init(context.Background(), &mockConfigLoader{config: &Config{Enabled: false, DefaultPriority: 10}})
	require.NoError(t, err)

	assert.False(t, c.IsEnabled())
	assert.Nil(t, c.GetManager())
	assert.NoError(t, c.Start(context.Background()))
	assert.NoError(t, c.Stop(context.Background()))
}

func TestComponent_Init_InvalidConfig(t *testing.T) {
	c := newTestComponent()

	err := c.Init(context.Background(), &mockConfigLoader{config: &Config{Enabled: true, DefaultPriority: 5000}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, c.GetManager())
}

func TestComponent_Init_MalformedSection(t *testing.T) {
	loader := config.NewLoader()
	loader.AddSource(config.NewMapSource("test", map[string]interface{}{
		"event.enabled":          false,
		"event.default_priority": "abc",
	}, config.PriorityOverride))
	require.NoError(t, loader.Load())

	c := newTestComponent()
	err := c.Init(context.Background(), loader)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, c.GetManager())
}

func TestComponent_Init_UnmarshalError(t *testing.T) {
	c := newTestComponent()

	err := c.Init(context.Background(), &mockConfigLoader{config: &Config{}, err: errors.New("decode failed")})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "decode failed")
}

func TestComponent_Init_DefaultPriority(t *testing.T) {
	c := newTestComponent()
	cfg := DefaultConfig()
	cfg.DefaultPriority = 42

	require.NoError(t, c.Init(context.Background(), &mockConfigLoader{config: &cfg}))
	assert.Equal(t, 42, c.GetManager().defaultPriority)
}

func TestComponent_Init_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	c := newTestComponent()
	c.SetMeterProvider(mp)
	cfg := DefaultConfig()
	cfg.Metrics = MetricsConfig{Enabled: true, RecordListenerCount: true}

	require.NoError(t, c.Init(context.Background(), &mockConfigLoader{config: &cfg}))
	require.NotNil(t, c.GetMetrics())
	assert.True(t, c.GetMetrics().IsRegistered())

	mustAttach(t, c.GetManager(), "foo", &recordingListener{})
	_, err := c.GetManager().Dispatch(context.Background(), "foo", nil, nil)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "event", rm.ScopeMetrics[0].Scope.Name)
}

func TestComponent_Init_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	run := func(enabled bool) int {
		sr.Reset()
		c := newTestComponent()
		c.SetTracerProvider(tp)
		cfg := DefaultConfig()
		cfg.Tracing.Enabled = enabled
		require.NoError(t, c.Init(context.Background(), &mockConfigLoader{config: &cfg}))

		mustAttach(t, c.GetManager(), "foo", &recordingListener{})
		_, err := c.GetManager().Dispatch(context.Background(), "foo", nil, nil)
		require.NoError(t, err)
		return len(sr.Ended())
	}

	assert.Equal(t, 1, run(true))
	assert.Equal(t, 0, run(false))
}

func TestComponent_Stop_DetachesAll(t *testing.T) {
	c := newTestComponent()
	require.NoError(t, c.Init(context.Background(), nil))
	require.NoError(t, c.Start(context.Background()))

	mustAttach(t, c.GetManager(), "foo", &recordingListener{})
	mustAttach(t, c.GetManager(), "bar", &recordingListener{})

	require.NoError(t, c.Stop(context.Background()))
	assert.Empty(t, c.GetManager().EventTypes())

	// idempotent
	require.NoError(t, c.Stop(context.Background()))
}
