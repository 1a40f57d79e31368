// Package confirmflow drives confirmation flows on a two-button signing
// device: short sequences of screens the user walks through before
// approving or rejecting a request.
//
// The package wires the flow engine (packages flow, navigator and staging)
// to a backend. Backends live in the device and simulator subpackages; any
// type with a Render method and an event channel can be used with
// NewSession.
package confirmflow

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

// Config is the device configuration read from TOML.
type Config = config.Config

// Options configures logging.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Application log level, e.g. "debug"; empty keeps the default
}

// Init sets up logging. Call it before opening a backend.
// Internal logging is verbose in dev mode and quiet otherwise.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	level := options.LogLevel
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		level = v
	}
	if level != "" {
		internal.SetRawLogLevel(level)
	}

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelWarn)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; any other problem is returned.
func LoadConfig(path string) (Config, error) {
	return config.LoadOrDefault(path)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
