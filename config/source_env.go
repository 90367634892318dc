package config

import (
	"os"
	"strings"
)

// EnvSource reads variables carrying PREFIX_
//
// Without bindings every underscore becomes a dot, so EVENTCTL_EVENT_ENABLED
// sets event.enabled. Keys that contain underscores need a binding.
type EnvSource struct {
	prefix   string
	priority int
	bindings map[string]string // config key -> variable name without prefix
}

func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{prefix: prefix, priority: priority, bindings: map[string]string{}}
}

// AddBinding reads key from PREFIX_envKey; once any binding exists only bound keys are read
func (s *EnvSource) AddBinding(key, envKey string) {
	s.bindings[key] = strings.TrimPrefix(envKey, s.prefix+"_")
}

func (s *EnvSource) Name() string  { return "env:" + s.prefix }
func (s *EnvSource) Priority() int { return s.priority }

func (s *EnvSource) Load() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if s.prefix == "" {
		return out, nil
	}

	if len(s.bindings) > 0 {
		for key, envKey := range s.bindings {
			if value, ok := os.LookupEnv(s.prefix + "_" + envKey); ok && value != "" {
				out[key] = value
			}
		}
		return out, nil
	}

	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		rest, ok := strings.CutPrefix(name, s.prefix+"_")
		if !ok || rest == "" {
			continue
		}
		out[strings.ReplaceAll(strings.ToLower(rest), "_", ".")] = value
	}
	return out, nil
}
