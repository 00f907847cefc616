package logger

import (
	"log/slog"
	"os"
)

// Logger is the application logger, a thin wrapper around slog.
type Logger struct {
	*slog.Logger
}

// New builds a Logger writing text records to stdout at the given level.
func New(level int) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})
	return &Logger{Logger: slog.New(handler)}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
