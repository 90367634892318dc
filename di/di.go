// Package di wires the event manager packages together with samber/do.
//
// Providers are registered lazily by dependency layer: config, logger,
// telemetry, event. Shutting the injector down detaches every listener,
// flushes telemetry exporters and closes log files, in reverse order.
//
//	injector := do.New()
//	di.RegisterCoreProviders(injector, di.ConfigOptions{ConfigPath: "./configs"})
//	defer injector.Shutdown()
//	mgr := do.MustInvoke[*event.EventManager](injector)
package di
