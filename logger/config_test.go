package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestDefaultManagerConfig_IsValid(t *testing.T) {
	cfg := DefaultManagerConfig()
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.EnableFile)
	assert.True(t, cfg.EnableConsole)
}

func TestManagerConfig_ApplyDefaults(t *testing.T) {
	cfg := ManagerConfig{Level: "debug"}
	cfg.ApplyDefaults()

	assert.Equal(t, "debug", cfg.Level, "configured values are kept")
	assert.Equal(t, "logs", cfg.BaseLogDir)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 3, cfg.MaxBackups)
	assert.Equal(t, 28, cfg.MaxAge)
	assert.Equal(t, "trace_id", cfg.TraceIDKey)
	assert.Equal(t, "trace_id", cfg.TraceIDFieldName)
}

func TestManagerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ManagerConfig)
		wantErr bool
	}{
		{"valid", func(c *ManagerConfig) {}, false},
		{"bad level", func(c *ManagerConfig) { c.Level = "verbose" }, true},
		{"bad encoding", func(c *ManagerConfig) { c.Encoding = "console_pretty" }, true},
		{"max size too small", func(c *ManagerConfig) { c.MaxSize = 0 }, true},
		{"negative backups", func(c *ManagerConfig) { c.MaxBackups = -1 }, true},
		{"max age too large", func(c *ManagerConfig) { c.MaxAge = 4000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultManagerConfig()
			tt.modify(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.FatalLevel, ParseLevel("fatal"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("unknown"))
}

func TestManagerConfig_FilePath(t *testing.T) {
	cfg := ManagerConfig{BaseLogDir: "logs"}
	assert.Equal(t, filepath.Join("logs", "event", "event-error.log"), cfg.filePath("event", "error"))
}
