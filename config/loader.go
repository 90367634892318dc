// Package config loads layered configuration (files, environment, overrides) through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// Loader merges its sources by priority into one viper instance
// and implements component.ConfigLoader
type Loader struct {
	sources []Source
	files   []string
	v       *viper.Viper
}

func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

func (l *Loader) AddSource(source Source) {
	l.sources = append(l.sources, source)
}

// Load applies sources from lowest to highest priority, later values win
func (l *Loader) Load() error {
	sort.SliceStable(l.sources, func(i, j int) bool {
		return l.sources[i].Priority() < l.sources[j].Priority()
	})

	v := viper.New()
	var files []string
	for _, source := range l.sources {
		values, err := source.Load()
		if err != nil {
			return fmt.Errorf("load source %s failed: %w", source.Name(), err)
		}
		if file, ok := source.(*FileSource); ok && file.Exists() {
			files = append(files, file.path)
		}
		for key, value := range values {
			v.Set(key, value)
		}
	}

	l.v = v
	l.files = files
	return nil
}

// Unmarshal decodes the section under key into out, the whole tree when key is empty
func (l *Loader) Unmarshal(key string, out interface{}) error {
	if key == "" {
		return l.v.Unmarshal(out)
	}
	if !l.v.IsSet(key) {
		return fmt.Errorf("config key %q not set", key)
	}
	return l.v.UnmarshalKey(key, out)
}

func (l *Loader) Get(key string) interface{}  { return l.v.Get(key) }
func (l *Loader) GetString(key string) string { return l.v.GetString(key) }
func (l *Loader) GetInt(key string) int       { return l.v.GetInt(key) }
func (l *Loader) GetBool(key string) bool     { return l.v.GetBool(key) }
func (l *Loader) IsSet(key string) bool       { return l.v.IsSet(key) }

// LoadedFiles files that existed and were merged, lowest priority first
func (l *Loader) LoadedFiles() []string {
	return l.files
}

// Options describes the standard layer stack:
// <Path>/config.yaml < <Path>/<env>.yaml < <EnvPrefix>_* < Overrides
type Options struct {
	Path      string
	EnvPrefix string
	Overrides map[string]interface{}
}

// Build creates and loads a Loader for opts
func Build(opts Options) (*Loader, error) {
	l := NewLoader()
	if opts.Path != "" {
		l.AddSource(NewFileSource(filepath.Join(opts.Path, "config.yaml"), PriorityFile))
		l.AddSource(NewFileSource(filepath.Join(opts.Path, Env()+".yaml"), PriorityEnvFile))
	}
	if opts.EnvPrefix != "" {
		l.AddSource(NewEnvSource(opts.EnvPrefix, PriorityEnv))
	}
	if len(opts.Overrides) > 0 {
		l.AddSource(NewMapSource("overrides", opts.Overrides, PriorityOverride))
	}
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Env deployment environment: APP_ENV, then ENV, then "dev"
func Env() string {
	for _, name := range []string{"APP_ENV", "ENV"} {
		if env := os.Getenv(name); env != "" {
			return env
		}
	}
	return "dev"
}
