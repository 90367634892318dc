package telemetry

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Exporter types
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNoop   = "noop"
)

// Sampler types
const (
	SamplerAlwaysOn    = "always_on"
	SamplerAlwaysOff   = "always_off"
	SamplerRatio       = "trace_id_ratio"
	SamplerParentBased = "parent_based_always_on"
)

// Config the "telemetry" section
type Config struct {
	Enabled        bool                   `mapstructure:"enabled"`
	ServiceName    string                 `mapstructure:"service_name"`
	ServiceVersion string                 `mapstructure:"service_version"`
	Exporter       ExporterConfig         `mapstructure:"exporter"`
	Sampler        SamplerConfig          `mapstructure:"sampler"`
	ResourceAttrs  map[string]interface{} `mapstructure:"resource_attributes"` // nested maps become dotted keys
	Batch          BatchConfig            `mapstructure:"batch"`
	Traces         TracesConfig           `mapstructure:"traces"`
	Metrics        MetricsConfig          `mapstructure:"metrics"`
}

// ExporterConfig shared by traces and metrics
type ExporterConfig struct {
	Type        string            `mapstructure:"type"`
	Endpoint    string            `mapstructure:"endpoint"` // otlp only
	Insecure    bool              `mapstructure:"insecure"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	Headers     map[string]string `mapstructure:"headers"`
	PrettyPrint bool              `mapstructure:"pretty_print"` // stdout only
}

type SamplerConfig struct {
	Type  string  `mapstructure:"type"`
	Ratio float64 `mapstructure:"ratio"` // trace_id_ratio only
}

// BatchConfig spans are exported synchronously unless Enabled
type BatchConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxQueueSize       int           `mapstructure:"max_queue_size"`
	MaxExportBatchSize int           `mapstructure:"max_export_batch_size"`
	ScheduleDelay      time.Duration `mapstructure:"schedule_delay"`
	ExportTimeout      time.Duration `mapstructure:"export_timeout"`
}

type TracesConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MetricsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ExportInterval time.Duration `mapstructure:"export_interval"`
	ExportTimeout  time.Duration `mapstructure:"export_timeout"`
}

// DefaultConfig telemetry off; when switched on, spans go to stdout
func DefaultConfig() Config {
	return Config{
		ServiceName:    "eventctl",
		ServiceVersion: "dev",
		Exporter:       ExporterConfig{Type: ExporterStdout, Timeout: 10 * time.Second},
		Sampler:        SamplerConfig{Type: SamplerParentBased, Ratio: 1.0},
		ResourceAttrs:  map[string]interface{}{},
		Batch: BatchConfig{
			MaxQueueSize:       2048,
			MaxExportBatchSize: 512,
			ScheduleDelay:      5 * time.Second,
			ExportTimeout:      30 * time.Second,
		},
		Traces:  TracesConfig{Enabled: true},
		Metrics: MetricsConfig{ExportInterval: 10 * time.Second, ExportTimeout: 5 * time.Second},
	}
}

// ApplyDefaults fills zero values left by a partial section
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	setDefault(&c.ServiceName, def.ServiceName)
	setDefault(&c.Exporter.Type, def.Exporter.Type)
	setDefault(&c.Sampler.Type, def.Sampler.Type)
	setDefault(&c.Exporter.Timeout, def.Exporter.Timeout)
	setDefault(&c.Metrics.ExportInterval, def.Metrics.ExportInterval)
	setDefault(&c.Metrics.ExportTimeout, def.Metrics.ExportTimeout)
	if c.Batch.Enabled {
		setDefault(&c.Batch.ScheduleDelay, def.Batch.ScheduleDelay)
		setDefault(&c.Batch.ExportTimeout, def.Batch.ExportTimeout)
	}
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// Validate checks an enabled configuration, a disabled one always passes
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServiceName, validation.Required),
		validation.Field(&c.Exporter),
		validation.Field(&c.Sampler),
		validation.Field(&c.Batch),
		validation.Field(&c.Metrics),
	)
	if err != nil {
		return fmt.Errorf("invalid telemetry config: %w", err)
	}
	return nil
}

func (e ExporterConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Type, validation.Required,
			validation.In(ExporterOTLP, ExporterStdout, ExporterNoop)),
		validation.Field(&e.Endpoint, validation.When(e.Type == ExporterOTLP, validation.Required)),
	)
}

func (s SamplerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required,
			validation.In(SamplerAlwaysOn, SamplerAlwaysOff, SamplerRatio, SamplerParentBased)),
		validation.Field(&s.Ratio, validation.When(s.Type == SamplerRatio,
			validation.Min(0.0), validation.Max(1.0))),
	)
}

func (b BatchConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.MaxQueueSize, validation.When(b.Enabled, validation.Required, validation.Min(1))),
		validation.Field(&b.MaxExportBatchSize, validation.When(b.Enabled, validation.Required, validation.Min(1))),
	)
}

func (m MetricsConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ExportInterval, validation.When(m.Enabled, validation.Required, validation.Min(time.Millisecond))),
	)
}
