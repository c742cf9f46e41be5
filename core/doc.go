// Package core defines the shared types used across termlog.
//
// It provides the Level type for severity filtering, the Field and
// Metadata types for ordered key-value metadata, the immutable Entry
// that represents a single accepted log event, and the Export record
// used to persist a logger's history.
//
// Levels are ordered debug < info < success < warning < error <
// critical. The order is used for filtering only.
//
// Entry has no exported fields. It is built once with NewEntry and
// handed by value to the history buffer, plugins and sinks; Metadata
// returns a copy so no consumer can change what another one observes.
//
// Metadata keeps insertion order through JSON encoding and decoding, so
// an exported history reparsed with ParseExport yields entries in the
// same order with the same keys.
package core
