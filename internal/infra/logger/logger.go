// Package logger configures the process-wide zerolog root logger.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the root logger from LOG_LEVEL and LOG_FORMAT. Components
// derive their own loggers with .With().
func New(service string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := parseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))

	var log zerolog.Logger
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "console" {
		w := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(w)
	} else {
		log = zerolog.New(os.Stdout)
	}

	return log.Level(level).With().Timestamp().Str("service", service).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "", "info":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
