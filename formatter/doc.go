// Package formatter turns values and log entries into text.
//
// The value formatters (Timestamp, Number, Duration, Bytes, Percentage,
// JSON and Wrap) are pure functions. They are used by the console
// renderer and are exported for renderers outside this module.
//
// Entry formatters implement Formatter. ConsoleFormatter renders the
// "[timestamp] symbol message" line plus an indented JSON metadata block,
// applying the theme's colors only when color was resolved as supported.
// JSONFormatter writes one JSON object per line for file sinks; its field
// names match core.Entry's JSON encoding.
//
// Both use a pooled bytes.Buffer internally. Buffers larger than 64 KiB
// are not returned to the pool to prevent a single large entry from
// permanently inflating memory usage.
package formatter
