// Package logger provides the process-wide structured logger used by the
// codec CLI and, through Debugf, by the codec's debug sink.
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

var globalLogger *slog.Logger

// InitLogger configures the global slog.Logger for the given level.
func InitLogger(level string) error {
	var slogLevel slog.Level

	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slogLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}

// GetLogger returns the global logger, or slog.Default() if InitLogger was never called.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// Debugf formats and logs a message at debug level. It is the default
// implementation of the codec's smf.DebugFunc seam, so parse/encode
// anomalies surface through the same logger as everything else in the CLI
// without the smf package importing log/slog itself.
func Debugf(format string, args ...any) {
	GetLogger().Debug(fmt.Sprintf(format, args...))
}
