// Package log provides the leveled logger used by fixedcol command-line
// tools. The container packages themselves never log; this exists for the
// binaries built on top of them.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	// LevelDebug level for detailed troubleshooting information
	LevelDebug Level = iota
	// LevelInfo level for general operational information
	LevelInfo
	// LevelWarn level for potentially harmful situations
	LevelWarn
	// LevelError level for error events
	LevelError
)

// String returns the string representation of the log level
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
		return fmt.Sprintf("LEVEL(%d)", l)
	}
}

// Logger is the logging interface the fixedcol tools program against.
type Logger interface {
	// Debug logs a debug-level message
	Debug(msg string, args ...any)
	// Info logs an info-level message
	Info(msg string, args ...any)
	// Warn logs a warning-level message
	Warn(msg string, args ...any)
	// Error logs an error-level message
	Error(msg string, args ...any)
	// With returns a new logger carrying an extra key=value field
	With(key string, value any) Logger
	// SetLevel sets the minimum level that gets written
	SetLevel(level Level)
}

type field struct {
	key   string
	value any
}

// TextLogger writes timestamped, leveled lines to a single writer. Fields
// are kept in attachment order rather than a map so output is stable.
type TextLogger struct {
	mu     sync.Mutex
	level  Level
	out    io.Writer
	fields []field
}

// Option configures a TextLogger.
type Option func(*TextLogger)

// WithLevel sets the minimum level written.
func WithLevel(level Level) Option {
	return func(l *TextLogger) {
		l.level = level
	}
}

// WithOutput sets the destination writer.
func WithOutput(out io.Writer) Option {
	return func(l *TextLogger) {
		l.out = out
	}
}

// New creates a TextLogger writing to stderr at info level, then applies
// the given options.
func New(opts ...Option) *TextLogger {
	l := &TextLogger{
		level: LevelInfo,
		out:   os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *TextLogger) write(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.out, "%s [%s]", time.Now().Format("2006-01-02 15:04:05.000"), level)
	for _, f := range l.fields {
		fmt.Fprintf(l.out, " %s=%v", f.key, f.value)
	}
	fmt.Fprintf(l.out, " %s\n", msg)
}

// Debug logs a debug-level message
func (l *TextLogger) Debug(msg string, args ...any) {
	l.write(LevelDebug, msg, args...)
}

// Info logs an info-level message
func (l *TextLogger) Info(msg string, args ...any) {
	l.write(LevelInfo, msg, args...)
}

// Warn logs a warning-level message
func (l *TextLogger) Warn(msg string, args ...any) {
	l.write(LevelWarn, msg, args...)
}

// Error logs an error-level message
func (l *TextLogger) Error(msg string, args ...any) {
	l.write(LevelError, msg, args...)
}

// With returns a child logger carrying the extra field. The child shares
// the parent's writer and level.
func (l *TextLogger) With(key string, value any) Logger {
	child := &TextLogger{
		level:  l.level,
		out:    l.out,
		fields: make([]field, len(l.fields), len(l.fields)+1),
	}
	copy(child.fields, l.fields)
	child.fields = append(child.fields, field{key: key, value: value})
	return child
}

// SetLevel sets the minimum level that gets written
func (l *TextLogger) SetLevel(level Level) {
	l.level = level
}
