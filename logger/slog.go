package logger

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xclock"

	"github.com/philipp01105/termlog/core"
)

// slogHandler adapts a Logger to slog.Handler so the logger can serve as
// the backend of log/slog.
type slogHandler struct {
	logger *Logger
	attrs  []core.Field
	group  string
}

// SlogHandler returns a slog.Handler that logs through l. Groups become
// dotted key prefixes.
func (l *Logger) SlogHandler() slog.Handler {
	return &slogHandler{logger: l}
}

// Enabled reports whether the handler handles records at the given level.
func (s *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(slogLevelToCore(level))
}

// Handle converts the record into an entry with the handler's attrs first.
func (s *slogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if level < s.logger.cfg.LogLevel {
		return nil
	}

	fields := make([]core.Field, len(s.attrs), len(s.attrs)+record.NumAttrs())
	copy(fields, s.attrs)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, s.group, a)
		return true
	})

	t := record.Time
	if t.IsZero() {
		t = xclock.Now()
	}
	s.logger.log(t, level, record.Message, fields)
	return nil
}

// WithAttrs returns a new handler with additional attributes.
func (s *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &slogHandler{logger: s.logger, attrs: newAttrs, group: s.group}
}

// WithGroup returns a new handler with the given group name.
func (s *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &slogHandler{logger: s.logger, attrs: s.attrs, group: newGroup}
}

// slogLevelToCore converts a slog.Level to a Level. Levels four steps
// above LevelError map to critical.
func slogLevelToCore(level slog.Level) Level {
	switch {
	case level >= slog.LevelError+4:
		return CriticalLevel
	case level >= slog.LevelError:
		return ErrorLevel
	case level >= slog.LevelWarn:
		return WarningLevel
	case level >= slog.LevelInfo:
		return InfoLevel
	default:
		return DebugLevel
	}
}

// appendAttr flattens a into fields, prefixing keys with the group path.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	case slog.KindString:
		return append(fields, core.Field{Key: key, Value: a.Value.String()})
	case slog.KindInt64:
		return append(fields, core.Field{Key: key, Value: a.Value.Int64()})
	case slog.KindUint64:
		return append(fields, core.Field{Key: key, Value: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(fields, core.Field{Key: key, Value: a.Value.Float64()})
	case slog.KindBool:
		return append(fields, core.Field{Key: key, Value: a.Value.Bool()})
	case slog.KindTime:
		return append(fields, core.Field{Key: key, Value: a.Value.Time()})
	case slog.KindDuration:
		return append(fields, core.Field{Key: key, Value: a.Value.Duration().String()})
	default:
		return append(fields, core.Field{Key: key, Value: a.Value.Any()})
	}
}
