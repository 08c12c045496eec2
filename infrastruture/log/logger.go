// Package logger provides named, coloured loggers shared by the application components.
package logger

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

var ErrNilWriter = errors.New("logger writer is nil")

const colorReset = "\033[0m"

// Logger writes levelled, key/value structured lines prefixed with a coloured component name.
type Logger struct {
	base *log.Logger
}

// New creates a logger whose lines start with [name] in the given ANSI color.
func New(name, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	base := log.NewWithOptions(w, log.Options{
		Prefix:          color + "[" + name + "]" + colorReset,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           log.InfoLevel,
	})
	return &Logger{base: base}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.base.Info(msg, keyvals...)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string, keyvals ...any) {
	l.base.Warn(msg, keyvals...)
}

// Error logs a failure.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.base.Error(msg, keyvals...)
}
