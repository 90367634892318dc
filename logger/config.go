package logger

import (
	"fmt"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap/zapcore"
)

// ManagerConfig the "logger" section, shared by every module logger
type ManagerConfig struct {
	Level         string `mapstructure:"level"`
	Encoding      string `mapstructure:"encoding"` // json or console
	AppName       string `mapstructure:"app_name"`
	EnableConsole bool   `mapstructure:"enable_console"`
	EnableCaller  bool   `mapstructure:"enable_caller"`

	// File output: <base_log_dir>/<module>/<module>-{info,error}.log, rotated by lumberjack
	EnableFile bool   `mapstructure:"enable_file"`
	BaseLogDir string `mapstructure:"base_log_dir"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`

	// Trace IDs come from the span in ctx, else from ctx.Value(TraceIDKey)
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`
	TraceIDFieldName string `mapstructure:"trace_id_field_name"`
}

var (
	validLevels    = []interface{}{"debug", "info", "warn", "error", "fatal"}
	validEncodings = []interface{}{"json", "console"}
)

func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Level:            "info",
		Encoding:         "json",
		EnableConsole:    true,
		EnableCaller:     true,
		BaseLogDir:       "logs",
		MaxSize:          100,
		MaxBackups:       3,
		MaxAge:           28,
		Compress:         true,
		EnableTraceID:    true,
		TraceIDKey:       "trace_id",
		TraceIDFieldName: "trace_id",
	}
}

// ApplyDefaults fills empty strings and zero sizes in place
// Booleans keep their value since false cannot be told apart from unset
func (c *ManagerConfig) ApplyDefaults() {
	def := DefaultManagerConfig()
	for field, value := range map[*string]string{
		&c.Level:            def.Level,
		&c.Encoding:         def.Encoding,
		&c.BaseLogDir:       def.BaseLogDir,
		&c.TraceIDKey:       def.TraceIDKey,
		&c.TraceIDFieldName: def.TraceIDFieldName,
	} {
		if *field == "" {
			*field = value
		}
	}
	for field, value := range map[*int]int{
		&c.MaxSize:    def.MaxSize,
		&c.MaxBackups: def.MaxBackups,
		&c.MaxAge:     def.MaxAge,
	} {
		if *field == 0 {
			*field = value
		}
	}
}

func (c ManagerConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.Required, validation.In(validLevels...)),
		validation.Field(&c.Encoding, validation.Required, validation.In(validEncodings...)),
		validation.Field(&c.MaxSize, validation.Required, validation.Min(1), validation.Max(10000)),
		validation.Field(&c.MaxBackups, validation.Min(0), validation.Max(1000)),
		validation.Field(&c.MaxAge, validation.Min(0), validation.Max(3650)),
	)
	if err != nil {
		return fmt.Errorf("invalid logger config: %w", err)
	}
	return nil
}

// ParseLevel unknown levels fall back to info
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (c ManagerConfig) filePath(module, level string) string {
	return filepath.Join(c.BaseLogDir, module, fmt.Sprintf("%s-%s.log", module, level))
}
