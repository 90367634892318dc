package main

import (
	"fmt"

	"github.com/KOMKZ/go-yogan-eventmanager/config"
	"github.com/KOMKZ/go-yogan-eventmanager/event"
	"github.com/KOMKZ/go-yogan-eventmanager/logger"
	"github.com/KOMKZ/go-yogan-eventmanager/telemetry"
	"github.com/spf13/cobra"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration files and environment, ignoring command line overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root)
		},
	}
}

func runCheck(cmd *cobra.Command, root *rootOptions) error {
	loader, err := config.Build(config.Options{Path: root.configPath, EnvPrefix: root.envPrefix})
	if err != nil {
		return err
	}

	loggerCfg := logger.DefaultManagerConfig()
	eventCfg := event.DefaultConfig()
	telemetryCfg := telemetry.DefaultConfig()
	sections := map[string]interface{}{
		"logger":    &loggerCfg,
		"event":     &eventCfg,
		"telemetry": &telemetryCfg,
	}
	for key, target := range sections {
		if !loader.IsSet(key) {
			continue
		}
		if err := loader.Unmarshal(key, target); err != nil {
			return fmt.Errorf("parse %s config failed: %w", key, err)
		}
	}
	loggerCfg.ApplyDefaults()
	telemetryCfg.ApplyDefaults()

	specs, err := loadListenerSpecs(loader)
	if err != nil {
		return err
	}

	validators := []config.Validator{loggerCfg, eventCfg, &telemetryCfg}
	for _, spec := range specs {
		validators = append(validators, spec)
	}
	if err := config.ValidateAll(validators...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, file := range loader.LoadedFiles() {
		fmt.Fprintf(out, "loaded:    %s\n", file)
	}
	fmt.Fprintf(out, "listeners: %d\n", len(specs))
	fmt.Fprintln(out, "configuration OK")
	return nil
}
