// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/silopkg/silo/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	w      io.Writer
	level  slog.Level
	mu     sync.RWMutex
}

// New creates a new Logger instance writing to stderr at info level.
func New() ports.Logger {
	return NewWithOptions(os.Stderr, slog.LevelInfo)
}

// NewWithOptions creates a Logger with an explicit destination and level.
// Debug level is enabled by the CLI's --debug flag.
func NewWithOptions(w io.Writer, level slog.Level) *Logger {
	l := &Logger{w: w, level: level}
	l.rebuild()
	return l
}

// SetOutput updates the logger's output destination.
// This is thread-safe and updates the underlying slog handler.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w = w
	l.rebuild()
}

// SetLevel updates the minimum level logged.
func (l *Logger) SetLevel(level slog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// rebuild recreates the slog handler. Must be called with l.mu held (or
// before the logger is shared).
func (l *Logger) rebuild() {
	handler := slog.NewTextHandler(l.w, &slog.HandlerOptions{
		Level: l.level,
	})
	l.logger = slog.New(handler)
}

// Debug logs a debug message with structured key-value context.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
