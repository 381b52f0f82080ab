package slog

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel converts a textual level name ("debug", "info", "warn",
// "error") into a slog.Level. Matching is case-insensitive.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
