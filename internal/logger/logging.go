// Package logger configures charmbracelet/log for syllabix binaries. Every
// logger writes to stderr because stdout carries the msgpack stream.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger with the given prefix at the global level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup points the package-level logger at stderr and sets its level.
// Debug mode also reports callers.
func Setup(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetDefault(NewWithConfig("", level, debug, debug, log.TextFormatter))
}
