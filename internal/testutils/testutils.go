package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"os"
)

// SetupTestLogger creates a slog.Logger that writes to a bytes.Buffer and
// stdout, configured for DEBUG level. Returns the logger and the buffer so
// tests can assert on emitted messages.
func SetupTestLogger() (*slog.Logger, *bytes.Buffer) {
	var logBuf bytes.Buffer
	handler := slog.NewTextHandler(io.MultiWriter(&logBuf, os.Stdout), &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &logBuf
}
