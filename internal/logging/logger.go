// Package logging provides a logging abstraction layer that decouples the
// application from specific logging frameworks.
package logging

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

var defaultLogger Logger

// GetLogger returns the process-wide default logger, creating a text/info
// logrus adapter on first use.
func GetLogger() Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogrusAdapter("info", "text")
	}
	return defaultLogger
}

// SetLogger replaces the process-wide default logger. A nil logger is ignored.
func SetLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
