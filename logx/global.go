package logx

import (
	"io"
	"os"
	"strings"
)

var defaultLogger *Logger

func init() {
	defaultLogger = New()

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLevel(logLevel); err == nil {
			defaultLogger.SetLevel(level)
		}
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		switch strings.ToLower(format) {
		case "json":
			defaultLogger.SetFormat(FormatJSON)
		default:
			defaultLogger.SetFormat(FormatConsole)
		}
	}

	// LOG_COLOR=false disables colored output
	if colorEnv := os.Getenv("LOG_COLOR"); colorEnv != "" {
		defaultLogger.SetColored(strings.ToLower(colorEnv) != "false")
	}

	// LOG_CALLER=false disables caller info
	if callerEnv := os.Getenv("LOG_CALLER"); callerEnv != "" {
		defaultLogger.SetShowCaller(strings.ToLower(callerEnv) != "false")
	}
}

// SetLevel sets the global log level.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetPrefix sets the global log prefix.
func SetPrefix(prefix string) {
	defaultLogger.SetPrefix(prefix)
}

// SetOutput sets the global output destination.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetShowCaller sets the global caller info display.
func SetShowCaller(show bool) {
	defaultLogger.SetShowCaller(show)
}

// SetColored sets the global colored output.
func SetColored(colored bool) {
	defaultLogger.SetColored(colored)
}

// SetFormat sets the global log format.
func SetFormat(format OutputFormat) {
	defaultLogger.SetFormat(format)
}

// GetLogger returns the default logger instance.
func GetLogger() *Logger {
	return defaultLogger
}

// Global logging functions
func Trace(msg string, args ...any) {
	defaultLogger.Trace(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	defaultLogger.Fatal(msg, args...)
}

// IsLevelEnabled checks if a level is enabled globally.
func IsLevelEnabled(level Level) bool {
	return defaultLogger.IsLevelEnabled(level)
}
