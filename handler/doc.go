// Package handler provides the Handler interface and the sinks that write
// formatted log entries.
//
// Console is the serialized terminal sink used by the logger for rendering.
// It writes an entry and its metadata block in one locked Write, and its
// WithFormatter method lets child loggers render differently while sharing
// the same stream lock.
//
// Async wraps any handler with a bounded channel and a background
// goroutine. When the queue is full, a per-level OverflowPolicy applies:
// DropNewest (default for debug through warning), DropOldest, or Block with
// a configurable timeout (default for error and critical). Close drains the
// queue before closing the wrapped handler.
//
// Multi fans out a single entry to multiple child handlers.
//
// Handlers track dropped, blocked, and processed counts via the Stats type,
// which can be queried at runtime for monitoring.
package handler
