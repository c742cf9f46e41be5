package logger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrShuttingDown is returned by Use once Shutdown has begun.
	ErrShuttingDown = errors.New("logger is shutting down")
)

// Hook names a plugin lifecycle hook.
type Hook string

const (
	HookInitialize Hook = "initialize"
	HookObserve    Hook = "observe"
	HookShutdown   Hook = "shutdown"
)

// PluginError reports a failed or panicking plugin hook.
type PluginError struct {
	Plugin  string
	Version string
	Hook    Hook
	Err     error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s@%s: %s: %v", e.Plugin, e.Version, e.Hook, e.Err)
}

func (e *PluginError) Unwrap() error { return e.Err }

// RenderError reports that an entry could not be rendered in full. The
// entry was still written in degraded form unless the write itself failed.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// ShutdownTimeoutError is returned by Shutdown when its context ended
// before every plugin's shutdown hook returned.
type ShutdownTimeoutError struct {
	// Pending lists the plugins whose hooks had not returned, by name.
	Pending []string
	// Err is the context's error.
	Err error
}

func (e *ShutdownTimeoutError) Error() string {
	return fmt.Sprintf("shutdown: %v; pending plugins: %s", e.Err, strings.Join(e.Pending, ", "))
}

func (e *ShutdownTimeoutError) Unwrap() error { return e.Err }
