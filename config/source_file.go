package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

// FileSource reads one yaml/json/toml file, format taken from the extension
// A missing file contributes nothing
type FileSource struct {
	path     string
	priority int
}

func NewFileSource(path string, priority int) *FileSource {
	return &FileSource{path: path, priority: priority}
}

func (s *FileSource) Name() string  { return "file:" + s.path }
func (s *FileSource) Priority() int { return s.priority }

// Exists reports whether the file is present
func (s *FileSource) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *FileSource) Load() (map[string]interface{}, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return map[string]interface{}{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("stat %s failed: %w", s.path, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s failed: %w", s.path, err)
	}

	out := make(map[string]interface{})
	for _, key := range v.AllKeys() {
		out[key] = v.Get(key)
	}
	return out, nil
}
