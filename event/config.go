package event

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Priority band accepted for the configured default priority
const (
	MinConfigPriority = -1000
	MaxConfigPriority = 1000
)

// Config event component settings
type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultPriority int           `mapstructure:"default_priority"`
	LogDispatch     bool          `mapstructure:"log_dispatch"`
	Metrics         MetricsConfig `mapstructure:"metrics"`
	Tracing         TracingConfig `mapstructure:"tracing"`
}

type MetricsConfig struct {
	Enabled             bool `mapstructure:"enabled"`
	RecordListenerCount bool `mapstructure:"record_listener_count"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultPriority: DefaultPriority,
	}
}

// Validate implements config.Validator
// Field errors are returned as ErrInvalidConfig carrying a "fields" map
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.DefaultPriority,
			validation.Min(MinConfigPriority),
			validation.Max(MaxConfigPriority)),
	)
	if err == nil {
		return nil
	}

	var validationErrs validation.Errors
	if !errors.As(err, &validationErrs) {
		return ErrInvalidConfig.Wrap(err)
	}

	fields := make(map[string]string, len(validationErrs))
	for field, fieldErr := range validationErrs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}
	return ErrInvalidConfig.Wrap(err).WithData("fields", fields)
}
