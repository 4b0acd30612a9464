// Package logger provides a small leveled logger that is passed to each
// component instead of living in process-wide state.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger writes timestamped leveled messages to a single destination.
// The zero value is unusable; construct with New, NewFile or Discard.
type Logger struct {
	mu      sync.Mutex
	l       *log.Logger
	file    *os.File
	verbose bool
}

// New creates a logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", log.Ltime|log.Lmicroseconds)}
}

// NewFile creates a logger appending to the file at path.
func NewFile(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //#nosec G304 -- user-provided log path
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	lg := New(f)
	lg.file = f
	return lg, nil
}

// Discard creates a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(io.Discard)
}

// SetVerbose enables Debug output.
func (l *Logger) SetVerbose(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = v
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// Info logs an info message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.printf("[INFO] "+format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.printf("[WARN] "+format, v...)
}

// Error logs an error message.
func (l *Logger) Error(format string, v ...interface{}) {
	l.printf("[ERROR] "+format, v...)
}

// Debug logs a debug message when verbose output is enabled.
func (l *Logger) Debug(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	verbose := l.verbose
	l.mu.Unlock()
	if verbose {
		l.printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) printf(format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Printf(format, v...)
}
