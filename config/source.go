package config

// Layer priorities, higher wins
const (
	PriorityFile     = 10  // config.yaml
	PriorityEnvFile  = 20  // <env>.yaml
	PriorityEnv      = 50  // prefixed environment variables
	PriorityOverride = 100 // command line flags
)

// Source one configuration layer
type Source interface {
	Name() string
	Priority() int
	// Load returns values keyed by dotted path, e.g. "event.default_priority"
	Load() (map[string]interface{}, error)
}

// MapSource fixed values, used for flag overrides and tests
type MapSource struct {
	name     string
	priority int
	values   map[string]interface{}
}

func NewMapSource(name string, values map[string]interface{}, priority int) *MapSource {
	return &MapSource{name: name, values: values, priority: priority}
}

func (s *MapSource) Name() string  { return "map:" + s.name }
func (s *MapSource) Priority() int { return s.priority }

func (s *MapSource) Load() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

// Validator implemented by configuration sections
type Validator interface {
	Validate() error
}

// ValidateAll stops at the first failing section
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
