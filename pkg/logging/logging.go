// Package logging configures the process-wide slog logger.
//
// The default handler is tint's colored text output, which reads well on a
// developer terminal. Production deployments set LOG_FORMAT=json to get
// machine-parseable lines instead.
//
// Environment variables:
//
//	LOG_LEVEL:  debug, info, warn, error (default: info)
//	LOG_FORMAT: text, json (default: text)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger configured from LOG_LEVEL and
// LOG_FORMAT.
func Setup() {
	slog.SetDefault(slog.New(newHandler(levelFromEnv())))
}

// SetupWithLevel installs the default logger at the given level,
// ignoring LOG_LEVEL.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(newHandler(level)))
}

func newHandler(level slog.Level) slog.Handler {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
