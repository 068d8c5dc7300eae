// Package debug writes the application's diagnostic log. The terminal belongs
// to the UI, so everything goes to a file under the config directory.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DebugLogger manages the log file and its slog handler
type DebugLogger struct {
	logger  *slog.Logger
	logFile *os.File
	session string
}

var (
	mu           sync.RWMutex
	globalLogger *DebugLogger
)

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewDebugLogger opens (or creates) path for appending. An empty path
// discards all output.
func NewDebugLogger(path string, level slog.Level) (*DebugLogger, error) {
	var (
		w    io.Writer = io.Discard
		file *os.File
	)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		w, file = f, f
	}
	return newLogger(w, file, level), nil
}

// NewWriterLogger logs to w; used by tests and the non-TUI subcommands.
func NewWriterLogger(w io.Writer, level slog.Level) *DebugLogger {
	return newLogger(w, nil, level)
}

func newLogger(w io.Writer, file *os.File, level slog.Level) *DebugLogger {
	session := uuid.NewString()
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &DebugLogger{
		logger:  slog.New(handler).With(slog.String("session", session)),
		logFile: file,
		session: session,
	}
}

// Session returns the ID attached to every record of this run.
func (d *DebugLogger) Session() string {
	return d.session
}

// Close flushes and closes the log file
func (d *DebugLogger) Close() {
	if d == nil {
		return
	}
	d.logger.Info("debug session ended")
	if d.logFile != nil {
		if err := d.logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to close debug log file: %v\n", err)
		}
	}
}

// SetGlobal installs d as the logger used by the package-level helpers.
func SetGlobal(d *DebugLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = d
	if d != nil {
		d.logger.Info("debug session started")
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger == nil {
		return nil
	}
	return globalLogger.logger
}

func logf(level slog.Level, subsystem string, err error, format string, args ...any) {
	l := current()
	if l == nil {
		return
	}
	attrs := []any{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...), attrs...)
}

// DebugLog logs a debug message from the UI layer
func DebugLog(format string, args ...any) {
	logf(slog.LevelDebug, "ui", nil, format, args...)
}

// Debug logs a debug message for subsystem.
func Debug(subsystem, format string, args ...any) {
	logf(slog.LevelDebug, subsystem, nil, format, args...)
}

// Info logs an informational message for subsystem.
func Info(subsystem, format string, args ...any) {
	logf(slog.LevelInfo, subsystem, nil, format, args...)
}

// Warn logs a warning for subsystem.
func Warn(subsystem string, err error, format string, args ...any) {
	logf(slog.LevelWarn, subsystem, err, format, args...)
}

// Error logs an error for subsystem.
func Error(subsystem string, err error, format string, args ...any) {
	logf(slog.LevelError, subsystem, err, format, args...)
}
