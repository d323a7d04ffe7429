package cli

import (
	"log/slog"

	"github.com/ubuntu/sysfetch/internal/constants"
)

// verbosityLevels maps the number of verbose flags to a log level.
var verbosityLevels = []slog.Level{constants.DefaultLogLevel, slog.LevelInfo, slog.LevelDebug}

// SetVerbosity sets the default logger level from the number of verbose flags.
// Counts past the last level keep the most verbose one.
func SetVerbosity(count int) {
	slog.SetLogLoggerLevel(verbosityLevels[max(0, min(count, len(verbosityLevels)-1))])
}
