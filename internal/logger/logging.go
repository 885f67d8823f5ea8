// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// Everything logs to stderr: stdout carries msgpack responses in server mode.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return NewWithConfig(prefix, log.GetLevel(), false, true, log.TextFormatter)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return newLogger(os.Stderr, prefix, level, caller, showTimestamp, fmt)
}

func newLogger(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup replaces the global logger. Debug mode adds caller info and
// lowers the level to debug.
func Setup(prefix string, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	l := NewWithConfig(prefix, level, debug, true, log.TextFormatter)
	log.SetDefault(l)
	return l
}
