package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Plain creates a logger without timestamps, for interactive output.
func Plain(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:    prefix,
		Formatter: log.TextFormatter,
		Level:     log.GetLevel(),
	})
}

// NewWithConfig creates a stderr logger with custom options.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
