// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Environment variables understood by all binaries.
const (
	EnvTuningPath  = "STARFALL_CONFIG"    // Path to a YAML tuning file
	EnvLogLevel    = "STARFALL_LOG_LEVEL" // debug, info, warn, error
	EnvSpritesPath = "STARFALL_SPRITES"   // Path to a YAML sprite catalog
	EnvLogFile     = "STARFALL_LOG_FILE"  // Log destination while a local game owns the terminal
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// NewLogger returns a stderr logger with the given prefix and the level taken
// from STARFALL_LOG_LEVEL. Unknown levels fall back to info.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info"))
	if err != nil {
		logger.Warn("unknown log level, using info", "value", os.Getenv(EnvLogLevel))
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// LoadFromEnv loads the tuning file named by STARFALL_CONFIG, or returns the
// defaults when the variable is unset.
func LoadFromEnv() (Tuning, error) {
	path := GetEnv(EnvTuningPath, "")
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// DetachLogger points logger away from the terminal a local game draws on: to
// the file named by STARFALL_LOG_FILE, or nowhere when it is unset. The
// returned func closes the file.
func DetachLogger(logger *log.Logger) (func() error, error) {
	path := GetEnv(EnvLogFile, "")
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("config: open log file: %w", err)
	}
	logger.SetOutput(f)
	return f.Close, nil
}
