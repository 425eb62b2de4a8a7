// Package logger provides the diagnostic channel for scanr.
//
// Diagnostics (unreadable files, traversal warnings) are written to a
// dedicated writer, normally stderr, so consumers of the match output stream
// are never polluted by error text. Writes are level-filtered and
// mutex-serialized; colored level labels are enabled automatically when the
// writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger writes attributed diagnostic messages to a single writer.
// All messages carry the "scanr:" program prefix so automated consumers can
// attribute stderr lines to this tool.
type Logger struct {
	writer io.Writer
	level  int
	mutex  sync.Mutex

	warnLabel  string
	errorLabel string
	debugLabel string
}

// New creates a Logger that writes to the provided writer. If writer is nil,
// messages are silently discarded. level is one of debug, info, warn, error
// (case-insensitive); empty or invalid values default to info. Level labels
// are colored when the writer is a TTY.
func New(writer io.Writer, level string) *Logger {
	l := &Logger{
		writer:     writer,
		level:      parseLevel(level),
		warnLabel:  "warning",
		errorLabel: "error",
		debugLabel: "debug",
	}

	if isTerminal(writer) {
		l.warnLabel = color.New(color.FgYellow).Sprint(l.warnLabel)
		l.errorLabel = color.New(color.FgRed).Sprint(l.errorLabel)
		l.debugLabel = color.New(color.FgCyan).Sprint(l.debugLabel)
	}
	return l
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLevel converts a level string to its numeric value, defaulting to
// info for empty or unknown levels.
func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level message.
// Format: "scanr: debug: <message>"
func (l *Logger) Debugf(format string, args ...any) {
	l.logf(levelDebug, l.debugLabel, format, args...)
}

// Infof logs an info-level message without a level label.
// Format: "scanr: <message>"
func (l *Logger) Infof(format string, args ...any) {
	l.logf(levelInfo, "", format, args...)
}

// Warnf logs a warning-level message.
// Format: "scanr: warning: <message>"
func (l *Logger) Warnf(format string, args ...any) {
	l.logf(levelWarn, l.warnLabel, format, args...)
}

// Errorf logs an error-level message.
// Format: "scanr: error: <message>"
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(levelError, l.errorLabel, format, args...)
}

func (l *Logger) logf(level int, label, format string, args ...any) {
	if l.writer == nil || level < l.level {
		return
	}

	msg := fmt.Sprintf(format, args...)

	l.mutex.Lock()
	defer l.mutex.Unlock()
	if label == "" {
		fmt.Fprintf(l.writer, "scanr: %s\n", msg)
	} else {
		fmt.Fprintf(l.writer, "scanr: %s: %s\n", label, msg)
	}
}
