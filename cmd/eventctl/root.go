package main

import (
	"fmt"
	"io"

	"github.com/KOMKZ/go-yogan-eventmanager/config"
	"github.com/KOMKZ/go-yogan-eventmanager/di"
	"github.com/KOMKZ/go-yogan-eventmanager/event"
	"github.com/KOMKZ/go-yogan-eventmanager/telemetry"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// rootOptions flags shared by every subcommand
type rootOptions struct {
	configPath string
	envPrefix  string
	logLevel   string
	metrics    bool
	trace      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "eventctl",
		Short: "Dispatch events to listeners declared in configuration",
		Long: `eventctl builds an event manager from the "event" configuration section,
attaches the listeners declared under "listeners" and dispatches events to them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "./configs", "configuration directory")
	flags.StringVar(&opts.envPrefix, "env-prefix", "EVENTCTL", "environment variable prefix")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.metrics, "metrics", false, "export event metrics to stdout on exit")
	flags.BoolVar(&opts.trace, "trace", false, "export dispatch spans to stdout")

	cmd.AddCommand(newDispatchCmd(opts))
	cmd.AddCommand(newListenersCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newCodesCmd())

	return cmd
}

// overrides translates flags into configuration keys
func (o *rootOptions) overrides() map[string]interface{} {
	values := map[string]interface{}{
		"logger.level": o.logLevel,
	}
	if o.trace || o.metrics {
		values["telemetry.enabled"] = true
		values["telemetry.exporter.type"] = "stdout"
		values["telemetry.traces.enabled"] = o.trace
		values["telemetry.metrics.enabled"] = o.metrics
	}
	if o.trace {
		values["event.tracing.enabled"] = true
	}
	if o.metrics {
		values["event.metrics.enabled"] = true
		values["event.metrics.record_listener_count"] = true
	}
	return values
}

// app one wired injector plus the manager with configured listeners attached
type app struct {
	injector *do.RootScope
	manager  *event.EventManager
	specs    []listenerSpec
}

// newApp builds the injector and attaches the configured listeners
// Listener output goes to out
func newApp(o *rootOptions, out io.Writer) (*app, error) {
	injector := do.New()
	di.RegisterCoreProviders(injector, di.ConfigOptions{
		ConfigPath:   o.configPath,
		ConfigPrefix: o.envPrefix,
		Overrides:    o.overrides(),
		Telemetry:    []telemetry.Option{telemetry.WithWriter(out)},
	})

	loader, err := do.Invoke[*config.Loader](injector)
	if err != nil {
		injector.Shutdown()
		return nil, fmt.Errorf("load configuration failed: %w", err)
	}

	manager, err := do.Invoke[*event.EventManager](injector)
	if err != nil {
		injector.Shutdown()
		return nil, err
	}

	specs, err := loadListenerSpecs(loader)
	if err != nil {
		injector.Shutdown()
		return nil, err
	}

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			injector.Shutdown()
			return nil, err
		}
		if _, err := manager.Attach(spec.Event, spec.listener(out), spec.attachOptions()...); err != nil {
			injector.Shutdown()
			return nil, fmt.Errorf("attach listener %q failed: %w", spec.displayName(), err)
		}
	}

	return &app{injector: injector, manager: manager, specs: specs}, nil
}

// close shuts the injector down, flushing telemetry exporters
func (a *app) close() {
	a.injector.Shutdown()
}
