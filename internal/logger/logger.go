package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents a log level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger manages compiler logs
type Logger struct {
	levels map[LogLevel]bool
	writer io.Writer
}

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger([]string{"info", "warn", "error"}, os.Stderr)
}

// NewLogger creates a new logger with the given enabled levels
func NewLogger(levels []string, writer io.Writer) *Logger {
	logger := &Logger{
		levels: make(map[LogLevel]bool),
		writer: writer,
	}

	for _, level := range levels {
		level = strings.ToLower(strings.TrimSpace(level))
		switch level {
		case "debug":
			logger.levels[LogLevelDebug] = true
		case "info":
			logger.levels[LogLevelInfo] = true
		case "warn", "warning":
			logger.levels[LogLevelWarn] = true
		case "error":
			logger.levels[LogLevelError] = true
		}
	}

	return logger
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the default logger
func GetDefaultLogger() *Logger {
	return defaultLogger
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.levels[level] {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", timestamp, strings.ToUpper(level.String()), fmt.Sprintf(format, args...))
}

// Debug logs a debug message, used for per-symbol resolution traces
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, format, args...)
}

// Info logs an informative message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, format, args...)
}

// Warn logs a warning
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, format, args...)
}

// Global helpers for the default logger
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// SetLogLevels configures the default logger's levels
func SetLogLevels(levels []string) {
	defaultLogger = NewLogger(levels, os.Stderr)
}

// SetLogWriter configures the default logger's writer
func SetLogWriter(writer io.Writer) {
	if defaultLogger == nil {
		defaultLogger = NewLogger([]string{"info", "warn", "error"}, writer)
	} else {
		defaultLogger.writer = writer
	}
}
