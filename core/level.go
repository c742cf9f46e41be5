package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for names outside the six levels.
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity level of a log entry
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// SuccessLevel for completed operations worth calling out
	SuccessLevel
	// WarningLevel for recoverable problems
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures that need immediate attention
	CriticalLevel
)

// LevelCount is the number of defined levels.
const LevelCount = int(CriticalLevel) + 1

var levelNames = [...]string{
	DebugLevel:    "debug",
	InfoLevel:     "info",
	SuccessLevel:  "success",
	WarningLevel:  "warning",
	ErrorLevel:    "error",
	CriticalLevel: "critical",
}

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{DebugLevel, InfoLevel, SuccessLevel, WarningLevel, ErrorLevel, CriticalLevel}
}

// Valid reports whether l is one of the six defined levels.
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= CriticalLevel
}

// String returns the string representation of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", int8(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int8(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a string to a Level. Matching is case-insensitive
// and "warn" is accepted as an alias for warning.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "success":
		return SuccessLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "critical":
		return CriticalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
