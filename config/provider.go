package config

import (
	"fmt"

	"github.com/samber/do/v2"
)

// ProvideLoader registers a Loader built from opts
//
//	do.Provide(injector, config.ProvideLoader(config.Options{Path: "./configs", EnvPrefix: "EVENTCTL"}))
//	loader := do.MustInvoke[*config.Loader](injector)
func ProvideLoader(opts Options) func(do.Injector) (*Loader, error) {
	return func(do.Injector) (*Loader, error) {
		l, err := Build(opts)
		if err != nil {
			return nil, fmt.Errorf("config loader build failed: %w", err)
		}
		return l, nil
	}
}
