// Package logging provides the component logger shared by tvpanel packages.
//
// Loggers are thin wrappers around a logrus entry. Every package receives
// a *Logger scoped with WithComponent; a nil *Logger is valid and discards
// everything, so collaborators can be constructed without one in tests.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown strings map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Config configures a root logger.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// JSON selects the JSON formatter instead of text.
	JSON bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger provides structured logging.
type Logger struct {
	entry *logrus.Entry
}

// New creates a root logger.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	base := logrus.New()
	base.SetOutput(cfg.Output)
	base.SetLevel(cfg.Level.logrus())
	if cfg.JSON {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	}

	return &Logger{entry: logrus.NewEntry(base)}
}

// Discard returns a logger that drops all output.
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.entry.Logger.SetLevel(level.logrus())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	if l == nil {
		return
	}
	l.entry.Debugf(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	l.entry.Infof(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		return
	}
	l.entry.Warnf(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		return
	}
	l.entry.Errorf(msg, args...)
}
