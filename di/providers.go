package di

import (
	"context"
	"fmt"

	"github.com/KOMKZ/go-yogan-eventmanager/config"
	"github.com/KOMKZ/go-yogan-eventmanager/event"
	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"github.com/KOMKZ/go-yogan-eventmanager/telemetry"
	"github.com/samber/do/v2"
)

// ConfigOptions configuration component options
type ConfigOptions struct {
	ConfigPath   string                 // configuration directory
	ConfigPrefix string                 // environment variable prefix
	Overrides    map[string]interface{} // dotted-key overrides (command line flags)
	Telemetry    []telemetry.Option     // e.g. redirect stdout exporters
}

// RegisterCoreProviders registers every provider, by dependency level, lazily
func RegisterCoreProviders(injector do.Injector, opts ConfigOptions) {
	// Layer 0: Config (no dependencies)
	do.Provide(injector, config.ProvideLoader(config.Options{
		Path:      opts.ConfigPath,
		EnvPrefix: opts.ConfigPrefix,
		Overrides: opts.Overrides,
	}))

	// Layer 1: Logger (depends on Config)
	do.Provide(injector, ProvideLoggerManager)

	// Layer 2: Telemetry (depends on Config, Logger)
	do.Provide(injector, ProvideTelemetryManager(opts.Telemetry...))

	// Layer 3: Event (depends on Config, Logger, Telemetry)
	do.Provide(injector, ProvideEventComponent)
	do.Provide(injector, ProvideEventManager)
}

// ProvideLoggerManager creates the logger.Manager
// Falls back to the default configuration when no "logger" section exists
func ProvideLoggerManager(i do.Injector) (*logger.Manager, error) {
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return logger.NewManager(logger.DefaultManagerConfig()), nil
	}

	loggerCfg := logger.DefaultManagerConfig()
	if loader.IsSet("logger") {
		if err := loader.Unmarshal("logger", &loggerCfg); err != nil {
			return nil, fmt.Errorf("parse logger config failed: %w", err)
		}
	}
	loggerCfg.ApplyDefaults()
	if err := loggerCfg.Validate(); err != nil {
		return nil, err
	}

	return logger.NewManager(loggerCfg), nil
}

// ProvideCtxLogger named logger factory
func ProvideCtxLogger(moduleName string) func(do.Injector) (*logger.CtxZapLogger, error) {
	return func(i do.Injector) (*logger.CtxZapLogger, error) {
		mgr, err := do.Invoke[*logger.Manager](i)
		if err != nil {
			return logger.GetLogger(moduleName), nil
		}
		return mgr.GetLogger(moduleName), nil
	}
}

// ProvideTelemetryManager creates and starts the telemetry.Manager
// The injector shuts it down (flushing exporters) on Shutdown
func ProvideTelemetryManager(opts ...telemetry.Option) func(do.Injector) (*telemetry.Manager, error) {
	return func(i do.Injector) (*telemetry.Manager, error) {
		return newTelemetryManager(i, opts)
	}
}

func newTelemetryManager(i do.Injector, opts []telemetry.Option) (*telemetry.Manager, error) {
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return nil, err
	}

	cfg := telemetry.DefaultConfig()
	if loader.IsSet("telemetry") {
		if err := loader.Unmarshal("telemetry", &cfg); err != nil {
			return nil, fmt.Errorf("parse telemetry config failed: %w", err)
		}
	}

	log := logger.GetLogger("telemetry")
	if mgr, err := do.Invoke[*logger.Manager](i); err == nil {
		log = mgr.GetLogger("telemetry")
	}

	m := telemetry.NewManager(cfg, log, opts...)
	if err := m.Start(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

// ProvideEventComponent creates, initializes and starts the event component
func ProvideEventComponent(i do.Injector) (*event.Component, error) {
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return nil, err
	}

	comp := event.NewComponent()
	if mgr, err := do.Invoke[*logger.Manager](i); err == nil {
		comp.SetLogger(mgr.GetLogger("event"))
	}
	if tm, err := do.Invoke[*telemetry.Manager](i); err == nil && tm.IsEnabled() {
		comp.SetTracerProvider(tm.TracerProvider())
		comp.SetMeterProvider(tm.MeterProvider())
	}

	ctx := context.Background()
	if err := comp.Init(ctx, loader); err != nil {
		return nil, err
	}
	if err := comp.Start(ctx); err != nil {
		return nil, err
	}
	return comp, nil
}

// ProvideEventManager exposes the component's EventManager
// Every consumer resolving it shares the same registry
func ProvideEventManager(i do.Injector) (*event.EventManager, error) {
	comp, err := do.Invoke[*event.Component](i)
	if err != nil {
		return nil, err
	}
	if !comp.IsEnabled() {
		return nil, fmt.Errorf("event component is disabled")
	}
	return comp.GetManager(), nil
}
