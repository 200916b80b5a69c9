// pattern: Imperative Shell

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath       string // Path to the rotated JSON log file
	MaxSizeMB      int    // Max size in MB before rotation
	MaxBackups     int    // Max number of old log files to keep
	MaxAgeDays     int    // Max days to keep old log files
	Level          string // Minimum level (debug, info, warn, error)
	ChannelBufSize int    // Buffer for the TUI log panel (default 1000)
}

// LoggerProvider hands out scoped loggers. Manager and TestLogManager both
// satisfy it.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger is a slog-style logger bound to a dotted scope such as
// "engine.main" or "store.sqlite". A zero or nop logger discards output.
type ScopedLogger struct {
	slog  *slog.Logger
	scope string
}

func (l *ScopedLogger) Info(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

func (l *ScopedLogger) Error(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a logger that adds the given key-value pairs to every entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), scope: l.scope}
}

// Scope returns the logger's dotted scope.
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// Manager writes every entry to a rotated file and to a channel the TUI
// drains into its log panel.
type Manager struct {
	baseZap     *zap.Logger
	level       zap.AtomicLevel
	channelSink *ChannelSink
	fileWriter  *lumberjack.Logger

	mu      sync.RWMutex
	loggers map[string]*ScopedLogger
}

// NewManager creates a log manager. FilePath is required.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}
	if cfg.ChannelBufSize == 0 {
		cfg.ChannelBufSize = 1000
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 14
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	level := zap.NewAtomicLevelAt(levelFromString(cfg.Level))
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	channelSink := NewChannelSink(cfg.ChannelBufSize)

	enc := zapcore.NewJSONEncoder(encoderConfig())
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(fileWriter), level),
		zapcore.NewCore(enc.Clone(), zapcore.AddSync(channelSink), level),
	)

	return &Manager{
		baseZap:     zap.New(core),
		level:       level,
		channelSink: channelSink,
		fileWriter:  fileWriter,
		loggers:     make(map[string]*ScopedLogger),
	}, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.EpochTimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}

func levelFromString(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// For returns the cached logger for scope, creating it on first use.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	logger, ok := m.loggers[scope]
	m.mu.RUnlock()
	if ok {
		return logger
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger = newScopedLogger(m.baseZap, m.level, scope)
	m.loggers[scope] = logger
	return logger
}

func newScopedLogger(base *zap.Logger, level zapcore.LevelEnabler, scope string) *ScopedLogger {
	named := base.Named(scope)
	return &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: named, level: level}),
		scope: scope,
	}
}

// SetLevel changes the minimum level of every logger. Unknown names fall
// back to info.
func (m *Manager) SetLevel(level string) {
	m.level.SetLevel(levelFromString(level))
}

// Level returns the current minimum level name.
func (m *Manager) Level() string {
	return m.level.Level().String()
}

// Entries returns the channel the TUI log panel reads from.
func (m *Manager) Entries() <-chan LogEntry {
	return m.channelSink.Entries()
}

// Sync flushes buffered output.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Forget drops cached loggers under a scope prefix, for example when a
// dock container is unmounted.
func (m *Manager) Forget(scopePrefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for scope := range m.loggers {
		if scope == scopePrefix || strings.HasPrefix(scope, scopePrefix+".") {
			delete(m.loggers, scope)
		}
	}
}

// Close flushes and releases the file and channel.
func (m *Manager) Close() error {
	_ = m.Sync()
	_ = m.channelSink.Close()
	return m.fileWriter.Close()
}
