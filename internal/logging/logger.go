package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// IsNil reports whether logger is nil or wraps a nil pointer receiver.
func IsNil(logger Logger) bool {
	if logger == nil {
		return true
	}
	val := reflect.ValueOf(logger)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return val.IsNil()
	default:
		return false
	}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if IsNil(logger) {
		return Nop()
	}
	return logger
}

// Config configures a slog-backed logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// SlogLogger wraps slog and preserves printf-style call sites by formatting
// the message before emitting it.
type SlogLogger struct {
	logger *slog.Logger
}

// New creates a slog-backed logger. A nil Output discards everything.
func New(config Config) *SlogLogger {
	level := slog.LevelInfo
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	output := config.Output
	if output == nil {
		output = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

// With returns a logger carrying additional attributes.
func (l *SlogLogger) With(args ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Component returns a Logger scoped to component.
func (l *SlogLogger) Component(component string) Logger {
	if l == nil {
		return Nop()
	}
	if component == "" {
		return l
	}
	return l.With("component", component)
}

func (l *SlogLogger) Debug(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Info(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warn(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Error(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// OpenFile opens path for appending log lines, creating parent directories.
// The caller closes the returned file.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

type fanout []Logger

// Multi combines loggers so that every call reaches each of them in order.
// Nil loggers are skipped and nested combinations are flattened.
func Multi(loggers ...Logger) Logger {
	var combined fanout
	for _, logger := range loggers {
		if nested, ok := logger.(fanout); ok {
			combined = append(combined, nested...)
			continue
		}
		if !IsNil(logger) {
			combined = append(combined, logger)
		}
	}
	switch len(combined) {
	case 0:
		return Nop()
	case 1:
		return combined[0]
	}
	return combined
}

func (f fanout) each(call func(Logger)) {
	for _, logger := range f {
		call(logger)
	}
}

func (f fanout) Debug(format string, args ...any) {
	f.each(func(l Logger) { l.Debug(format, args...) })
}

func (f fanout) Info(format string, args ...any) {
	f.each(func(l Logger) { l.Info(format, args...) })
}

func (f fanout) Warn(format string, args ...any) {
	f.each(func(l Logger) { l.Warn(format, args...) })
}

func (f fanout) Error(format string, args ...any) {
	f.each(func(l Logger) { l.Error(format, args...) })
}
