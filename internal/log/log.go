// Package log provides category-scoped structured logging. It is silent until
// Init, InitWithTeaLog or SetOutput installs a destination.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive level name to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// Category groups related log messages.
type Category string

const (
	CatGeometry Category = "geometry" // selection geometry
	CatCaret    Category = "caret"    // caret boundary and caret controller
	CatKeydown  Category = "keydown"  // delete planner decisions
	CatMerge    Category = "merge"    // merge coordinator
	CatGuard    Category = "guard"    // unselectable-region guard
	CatDocument Category = "document" // document and repository mutations
	CatEditor   Category = "editor"   // host component
	CatConfig   Category = "config"   // configuration loading
)

type logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	minLevel Level
	now      func() time.Time
}

var std = &logger{minLevel: LevelDebug, now: time.Now}

// Init opens path for appending and routes all log output to it.
// Returns a cleanup function that closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user-supplied debug log path
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	std.mu.Lock()
	std.file = f
	std.writer = f
	std.mu.Unlock()
	return func() { closeFile(f) }, nil
}

// InitWithTeaLog uses tea.LogToFile so log output never corrupts a running
// Bubble Tea program.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("open tea log file: %w", err)
	}
	std.mu.Lock()
	std.file = f
	std.writer = f
	std.mu.Unlock()
	return func() { closeFile(f) }, nil
}

func closeFile(f *os.File) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.file == f {
		std.file = nil
		std.writer = nil
	}
	_ = f.Close()
}

// SetOutput routes log output to w. A nil writer disables logging.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.writer = w
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.minLevel = level
}

// Enabled reports whether a message at level would be written.
func Enabled(level Level) bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.writer != nil && level >= std.minLevel
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.writer == nil || level < std.minLevel {
		return
	}

	// Format: 2026-01-02T15:04:05 [WARN] [keydown] message key=value key2=value2
	var sb strings.Builder
	sb.WriteString(std.now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&sb, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&sb, " %v=", fields[len(fields)-1])
	}
	sb.WriteByte('\n')
	_, _ = io.WriteString(std.writer, sb.String())
}
