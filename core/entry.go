package core

import (
	"encoding/json"
	"time"
)

// Entry represents a single accepted log event. It is immutable: all
// state is unexported and Metadata returns a copy.
type Entry struct {
	time      time.Time
	level     Level
	message   string
	metadata  Metadata
	namespace string
}

// NewEntry creates an Entry. The fields are copied into a fresh
// Metadata so later changes to the caller's slice are not observed.
func NewEntry(t time.Time, level Level, message, namespace string, fields ...Field) Entry {
	return Entry{
		time:      t,
		level:     level,
		message:   message,
		metadata:  NewMetadata(fields...),
		namespace: namespace,
	}
}

// Time returns when the entry was created.
func (e Entry) Time() time.Time { return e.time }

// Level returns the entry's level.
func (e Entry) Level() Level { return e.level }

// Message returns the message, including the "[namespace] " prefix when
// the entry came from a namespaced logger.
func (e Entry) Message() string { return e.message }

// Namespace returns the colon-joined namespace, or "".
func (e Entry) Namespace() string { return e.namespace }

// Metadata returns a copy of the entry's metadata.
func (e Entry) Metadata() Metadata { return e.metadata.Clone() }

// HasMetadata reports whether the entry carries at least one field.
func (e Entry) HasMetadata() bool { return len(e.metadata) > 0 }

// entryJSON is the wire shape shared by history export and JSON sinks.
type entryJSON struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	Namespace string    `json:"namespace,omitempty"`
}

// MarshalJSON implements json.Marshaler. The timestamp is ISO-8601.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Timestamp: e.time,
		Level:     e.level,
		Message:   e.message,
		Metadata:  e.metadata,
		Namespace: e.namespace,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	md := w.Metadata
	if len(md) == 0 {
		md = nil
	}
	*e = Entry{
		time:      w.Timestamp,
		level:     w.Level,
		message:   w.Message,
		metadata:  md,
		namespace: w.Namespace,
	}
	return nil
}
