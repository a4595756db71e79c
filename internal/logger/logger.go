// Package logger configures structured logging for registrar on top of
// zerolog. Stores receive a zerolog.Logger; the CLI configures the global
// level and writer once at startup.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	// Disabled turns logging off entirely.
	Disabled LogLevel = "disabled"
)

// Config represents logger configuration
type Config struct {
	// Level is the log level; unknown values fall back to warn.
	Level LogLevel
	// Pretty enables the human-readable console writer.
	Pretty bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var defaultLogger = zerolog.Nop()

// Configure builds the default logger from config and installs it as the
// zerolog global logger.
func Configure(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).Level(ParseLevel(string(config.Level))).With().Timestamp().Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

// ParseLevel maps a config string to a zerolog level. Empty and unknown
// values map to warn so routine mutations stay quiet.
func ParseLevel(s string) zerolog.Level {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case Disabled:
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// WithComponent returns a child of the default logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return defaultLogger.With().Str("component", component).Logger()
}
