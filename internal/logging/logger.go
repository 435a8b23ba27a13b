// Package logging provides a structured logging wrapper around Go's log/slog
// with rotating file output and execution timing helpers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with convenience methods for lmtt
type Logger struct {
	logger *slog.Logger
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	// FormatText outputs human-readable text logs
	FormatText LogFormat = "text"
	// FormatJSON outputs structured JSON logs
	FormatJSON LogFormat = "json"
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no file output)
	FilePath string
	// Level is the minimum log level (debug, info, warn, error)
	Level slog.Level
	// Format is the output format (text or json)
	Format LogFormat
	// MaxSizeMB is the maximum size in MB before rotation
	MaxSizeMB int
	// MaxBackups is the maximum number of old log files to keep
	MaxBackups int
	// Stderr also writes every record to standard error
	Stderr bool
}

var (
	globalLogger *Logger
	noopLogger   = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	rotator      *lumberjack.Logger
)

// Init initializes the global logger with the given configuration.
// With no file and no stderr output, logging is disabled (noop logger).
func Init(config Config) error {
	Shutdown()

	var writers []io.Writer
	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
			return err
		}
		rotator = &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			Compress:   true,
		}
		writers = append(writers, rotator)
	}
	if config.Stderr {
		writers = append(writers, os.Stderr)
	}

	if len(writers) == 0 {
		globalLogger = noopLogger
		return nil
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: config.Level,
	}
	out := io.MultiWriter(writers...)

	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	globalLogger = &Logger{
		logger: slog.New(handler),
	}

	return nil
}

// Get returns the global logger instance.
// Returns a noop logger if Init was not called or logging is disabled.
func Get() *Logger {
	if globalLogger == nil {
		return noopLogger
	}
	return globalLogger
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a new Logger with the given key-value pairs added as context
func (l *Logger) With(args ...any) *Logger {
	if l == noopLogger {
		return noopLogger
	}
	return &Logger{
		logger: l.logger.With(args...),
	}
}

// IsEnabled returns true if logging is enabled (not noop)
func (l *Logger) IsEnabled() bool {
	return l != noopLogger
}

// Package-level convenience functions

// Debug logs a debug message using the global logger
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message using the global logger
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message using the global logger
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// With returns the global logger with extra context
func With(args ...any) *Logger {
	return Get().With(args...)
}

// Module returns the global logger tagged with a module name
func Module(name string) *Logger {
	return Get().With("module", name)
}

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a string to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat converts a string to LogFormat
func ParseFormat(format string) LogFormat {
	switch format {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Shutdown closes the rotating log file, if any, and resets to the noop logger
func Shutdown() error {
	globalLogger = nil
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}
