package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager hands out one CtxZapLogger per module, all sharing one level
type Manager struct {
	cfg   ManagerConfig
	level zap.AtomicLevel

	mu      sync.Mutex
	loggers map[string]*CtxZapLogger
	files   []io.Closer
}

var (
	global     *Manager
	globalOnce sync.Once
)

// NewManager fills zero-valued fields of cfg with defaults
func NewManager(cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		cfg:     cfg,
		level:   zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		loggers: map[string]*CtxZapLogger{},
	}
}

// InitManager sets the process wide Manager, only the first call counts
func InitManager(cfg ManagerConfig) {
	globalOnce.Do(func() { global = NewManager(cfg) })
}

// GetLogger module logger from the process wide Manager, created with defaults if needed
func GetLogger(module string) *CtxZapLogger {
	InitManager(DefaultManagerConfig())
	return global.GetLogger(module)
}

func (m *Manager) Config() ManagerConfig {
	return m.cfg
}

// SetLevel changes the level of every logger handed out, existing ones included
func (m *Manager) SetLevel(level string) {
	m.level.SetLevel(ParseLevel(level))
}

// GetLogger returns the cached logger for module, building it on first use
func (m *Manager) GetLogger(module string) *CtxZapLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.loggers[module]; ok {
		return l
	}
	cfg := m.cfg
	l := &CtxZapLogger{
		base:   m.build(module).With(zap.String("module", module)),
		module: module,
		config: &cfg,
	}
	m.loggers[module] = l
	return l
}

// build tees console output with an info file (below error) and an error file
func (m *Manager) build(module string) *zap.Logger {
	enc := newEncoder(m.cfg.Encoding)

	var cores []zapcore.Core
	if m.cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), m.level))
	}
	if m.cfg.EnableFile {
		below := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return m.level.Enabled(l) && l < zapcore.ErrorLevel
		})
		above := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return m.level.Enabled(l) && l >= zapcore.ErrorLevel
		})
		cores = append(cores,
			zapcore.NewCore(enc, m.openFile(m.cfg.filePath(module, "info")), below),
			zapcore.NewCore(enc, m.openFile(m.cfg.filePath(module, "error")), above),
		)
	}

	var opts []zap.Option
	if m.cfg.EnableCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	return zap.New(zapcore.NewTee(cores...), opts...)
}

// openFile must be called with mu held
func (m *Manager) openFile(path string) zapcore.WriteSyncer {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    m.cfg.MaxSize,
		MaxBackups: m.cfg.MaxBackups,
		MaxAge:     m.cfg.MaxAge,
		Compress:   m.cfg.Compress,
		LocalTime:  true,
	}
	m.files = append(m.files, w)
	return zapcore.AddSync(w)
}

// Close syncs every logger and closes log files; loggers are rebuilt on next use
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	for _, l := range m.loggers {
		// syncing a terminal returns EINVAL on some platforms
		_ = l.base.Sync()
	}
	for _, f := range m.files {
		err = multierr.Append(err, f.Close())
	}
	m.loggers = map[string]*CtxZapLogger{}
	m.files = nil
	return err
}

// Shutdown lets a do injector close the manager
func (m *Manager) Shutdown() error {
	return m.Close()
}

func newEncoder(encoding string) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if encoding == "console" {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}
