package observability

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a LOG_LEVEL string to a slog.Level, defaulting to Info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs a JSON slog handler at the given level as the default logger.
func SetupLogging(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	})

	slog.SetDefault(slog.New(handler))
}
