// ABOUTME: Leveled logging for terminal control paths that must not fail loudly
// ABOUTME: Global level via SetLevel; writes to stderr by default so raw-mode output stays clean

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel changes the minimum level for every caller in the process.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log lines to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

// Debug is for swallowed errors and watcher chatter.
func Debug(format string, args ...any) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs at info level.
func Info(format string, args ...any) {
	logf(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logf(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	logf(LevelError, "[ERROR] ", format, args...)
}

func logf(l slog.Level, prefix, format string, args ...any) {
	if l < LevelError && slog.Level(level.Load()) > l {
		return
	}
	// Raw mode disables output post-processing, so emit an explicit CR.
	line := fmt.Sprintf(prefix+format, args...) + "\r\n"

	outMu.Lock()
	defer outMu.Unlock()
	_, _ = io.WriteString(out, line)
}
