// Package logging wraps charmbracelet/log with the leveled stderr logger
// used across the tool. User-facing progress output stays on stdout; this
// logger carries diagnostics only.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a logger writing to stderr with the given level.
// Valid levels: "debug", "info", "warn", "error". Unknown levels fall back to info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	applyLevel(logger, level)
	return logger
}

func applyLevel(logger *log.Logger, level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

// Default returns the shared package-level logger.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New("info")
		}
	})
	return defaultLogger
}

// SetDefault replaces the shared package-level logger.
func SetDefault(logger *log.Logger) {
	defaultLogger = logger
}

// SetLevel updates the level of the shared logger.
func SetLevel(level string) {
	applyLevel(Default(), level)
}
