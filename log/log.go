// Package log provides a small leveled logger writing to a file. The
// terminal itself is occupied by the renderer, so nothing here ever
// touches stdout or stderr. A nil *Logger discards everything, which
// keeps call sites free of guards when logging is disabled.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger appends timestamped leveled lines to a single file.
// Methods are safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	f     *os.File
	level atomic.Int64
}

// New opens path for appending, creating it if needed, and returns a
// logger gated at level.
func New(path string, level slog.Level) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log: open %s: %w", path, err)
	}
	l := &Logger{f: f}
	l.level.Store(int64(level))
	return l, nil
}

// SetLevel changes the gate. Safe to call while other goroutines log.
func (l *Logger) SetLevel(level slog.Level) {
	if l == nil {
		return
	}
	l.level.Store(int64(level))
}

// Level returns the current gate.
func (l *Logger) Level() slog.Level {
	if l == nil {
		return LevelError
	}
	return slog.Level(l.level.Load())
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// Debugf logs a debug message if the level allows it.
func (l *Logger) Debugf(format string, args ...any) {
	l.logf(LevelDebug, "[DEBUG]", format, args...)
}

// Infof logs an info message if the level allows it.
func (l *Logger) Infof(format string, args ...any) {
	l.logf(LevelInfo, "[INFO]", format, args...)
}

// Warnf logs a warning message if the level allows it.
func (l *Logger) Warnf(format string, args ...any) {
	l.logf(LevelWarn, "[WARN]", format, args...)
}

// Errorf logs an error message if the level allows it.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(LevelError, "[ERROR]", format, args...)
}

func (l *Logger) logf(level slog.Level, tag, format string, args ...any) {
	if l == nil || slog.Level(l.level.Load()) > level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.f, time.Now().Format("2006-01-02 15:04:05.000")+" "+tag+" "+format+"\n", args...)
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("log: unknown level %q", s)
}
