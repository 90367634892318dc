// Package component defines the lifecycle contracts shared by the event manager packages.
// It is the lowest layer and imports no other package of this module.
package component

import "context"

// Component names
const (
	ComponentConfig = "config"
	ComponentLogger = "logger"
	ComponentEvent  = "event"
)

// Component unified lifecycle: Init → Start → Stop
type Component interface {
	// Name unique component name
	Name() string

	// DependsOn names of components that must be initialized first
	DependsOn() []string

	// Init reads configuration and creates resources
	Init(ctx context.Context, loader ConfigLoader) error

	// Start begins serving
	Start(ctx context.Context) error

	// Stop releases resources, must be idempotent
	Stop(ctx context.Context) error
}

// ConfigLoader gives components read access to configuration
// without depending on a concrete config structure
type ConfigLoader interface {
	// Get configuration item (e.g., "event.default_priority")
	Get(key string) interface{}

	// Unmarshal deserializes the section under key into v
	//
	// Example:
	//   var cfg event.Config
	//   if err := loader.Unmarshal("event", &cfg); err != nil {
	//       return err
	//   }
	Unmarshal(key string, v interface{}) error

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// IsSet checks if the configuration item exists
	IsSet(key string) bool
}
