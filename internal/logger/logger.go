package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// New creates a logger that writes to both stdout and a log file. The
// returned func closes the log file and must be deferred by the caller.
func New(logFilePath string, logLevelStr string) (*slog.Logger, func()) {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// The main logger isn't set up yet; report on stderr and bail.
		slog.Error("Failed to open log file, exiting.", "path", logFilePath, "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(logLevelStr),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("2006/01/02 15:04:05"))
				}
			}
			return a
		},
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, logFile), opts)
	return slog.New(handler), func() { _ = logFile.Close() }
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO for
// anything it does not recognize.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
