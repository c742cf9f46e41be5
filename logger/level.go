package logger

import (
	"github.com/philipp01105/termlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	SuccessLevel  = core.SuccessLevel
	WarningLevel  = core.WarningLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name such as "warning" or "WARN" to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
