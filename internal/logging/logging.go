// Package logging sets up the application's slog loggers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hunterlog/hunterlog-go/internal/conf"
)

// Init configures the default slog logger: human-readable text on stderr,
// plus JSON output to a rotated log file when file logging is enabled.
// Returns a close function for the file writer.
func Init(settings *conf.Settings) func() error {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}

	closer := func() error { return nil }

	var handler slog.Handler
	if settings.Main.Log.Enabled {
		fileWriter := &lumberjack.Logger{
			Filename:   settings.Main.Log.Path,
			MaxSize:    settings.Main.Log.MaxSize,
			MaxBackups: settings.Main.Log.MaxBackups,
			MaxAge:     settings.Main.Log.MaxAge,
			Compress:   true,
		}
		closer = fileWriter.Close

		handler = newFanoutHandler(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
			slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{Level: level}),
		)
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
	return closer
}

// ForService returns a logger tagged with a service attribute, the
// convention every internal package uses for its package-level logger.
func ForService(name string) *slog.Logger {
	return slog.Default().With("service", name)
}

// NewTestLogger returns a logger that discards all output, for use in tests.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
