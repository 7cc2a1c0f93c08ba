package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin chainable wrapper around slog that carries the layer,
// file, and function context of the caller.
type Logger struct {
	logger *slog.Logger
}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

func New(layer string) Logger {
	return Logger{logger: slog.Default().With("layer", layer)}
}

func (l Logger) File(file string) Logger {
	return Logger{logger: l.logger.With("file", file)}
}

func (l Logger) Function(function string) Logger {
	return Logger{logger: l.logger.With("function", function)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{logger: l.logger.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Er logs an error without returning one.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

// ErMsg logs an error message without an underlying error value.
func (l Logger) ErMsg(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Err logs and returns the wrapped error for the caller to propagate.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// ErrMsg logs and returns a new error built from the message.
func (l Logger) ErrMsg(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// Error logs the message with its attributes and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.logger.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}
