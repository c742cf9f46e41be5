// Package filehandler writes formatted log entries to a size-rotated file.
//
// Rotation, retention and compression of old files are delegated to
// lumberjack. New returns a synchronous *File, or with Config.Async set, a
// handler.Async that queues entries with per-level overflow policies and
// drains them when closed.
//
// The default formatter writes JSON lines whose fields match the history
// export format, so every line parses back into a core.Entry.
package filehandler
