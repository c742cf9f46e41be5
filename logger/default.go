package logger

import (
	"sync"

	"github.com/philipp01105/termlog/core"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

// Default returns the process default logger, building it from
// DefaultConfig on first use. The engine itself never uses it.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		l, err := New(DefaultConfig())
		if err != nil {
			panic("termlog: default configuration is invalid: " + err.Error())
		}
		defaultLogger = l
	}
	return defaultLogger
}

// SetDefault sets the default logger. A nil logger resets it so the next
// Default call builds a fresh one.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	Default().Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	Default().Info(msg, fields...)
}

// Success logs a success message using the default logger
func Success(msg string, fields ...core.Field) {
	Default().Success(msg, fields...)
}

// Warning logs a warning message using the default logger
func Warning(msg string, fields ...core.Field) {
	Default().Warning(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	Default().Error(msg, fields...)
}

// Critical logs a critical message using the default logger
func Critical(msg string, fields ...core.Field) {
	Default().Critical(msg, fields...)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...any) {
	Default().Debugf(format, args...)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...any) {
	Default().Infof(format, args...)
}

// Successf logs a formatted success message using the default logger
func Successf(format string, args ...any) {
	Default().Successf(format, args...)
}

// Warningf logs a formatted warning message using the default logger
func Warningf(format string, args ...any) {
	Default().Warningf(format, args...)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...any) {
	Default().Errorf(format, args...)
}

// Criticalf logs a formatted critical message using the default logger
func Criticalf(format string, args ...any) {
	Default().Criticalf(format, args...)
}

// Child returns a namespaced child of the default logger
func Child(namespace string, opts ...Option) *Logger {
	return Default().Child(namespace, opts...)
}
