package infra

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so the rest of the module depends on the
// logging contract without importing the third-party package directly.
type Logger = zerolog.Logger

// NewLogger builds the process logger. Development gets a human-readable
// console at debug level; everything else emits JSON at info (or the level
// named in LOG_LEVEL).
func NewLogger(appEnv string) Logger {
	var out = zerolog.New(os.Stdout)
	if appEnv == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.
		Level(logLevel(appEnv)).
		With().
		Timestamp().
		Str("service", "storefront").
		Logger()
}

func logLevel(appEnv string) zerolog.Level {
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			return level
		}
	}
	if appEnv == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
