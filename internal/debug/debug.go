package debug

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logger  *slog.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Enable turns on debug logging to the specified file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("debug logging enabled")
	return nil
}

// Close closes the debug log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = nil
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

// Log writes a debug message if debugging is enabled.
func Log(format string, args ...any) {
	Event(fmt.Sprintf(format, args...))
}

// Event writes a structured debug record. attrs are slog key/value pairs.
func Event(msg string, attrs ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logger == nil {
		return
	}
	logger.Log(context.Background(), slog.LevelDebug, msg, attrs...)
}

// Timed logs the duration of an operation. Usage:
//
//	defer debug.Timed("operation name")()
func Timed(name string) func() {
	if !IsEnabled() {
		return func() {}
	}

	start := time.Now()
	Event("started", "op", name)

	return func() {
		Event("completed", "op", name, "elapsed", time.Since(start))
	}
}
