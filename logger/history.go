package logger

import (
	"time"

	"github.com/philipp01105/termlog/core"
)

// HistoryFilter selects history entries. Set fields combine with AND; the
// zero value matches everything.
type HistoryFilter struct {
	// Level, when set, matches entries of exactly this level
	Level *Level
	// Namespace, when set, matches entries whose full namespace equals it
	Namespace *string
	// Since, when non-zero, matches entries at or after this instant
	Since time.Time
}

// Match reports whether the entry passes the filter.
func (f HistoryFilter) Match(e core.Entry) bool {
	if f.Level != nil && e.Level() != *f.Level {
		return false
	}
	if f.Namespace != nil && e.Namespace() != *f.Namespace {
		return false
	}
	if !f.Since.IsZero() && e.Time().Before(f.Since) {
		return false
	}
	return true
}

// LevelFilter matches entries of one level.
func LevelFilter(level Level) HistoryFilter { return HistoryFilter{Level: &level} }

// NamespaceFilter matches entries of one namespace.
func NamespaceFilter(ns string) HistoryFilter { return HistoryFilter{Namespace: &ns} }

// SinceFilter matches entries at or after t.
func SinceFilter(t time.Time) HistoryFilter { return HistoryFilter{Since: t} }

// history is a bounded ring that grows up to capacity. Once full, a push
// overwrites the oldest entry. Callers hold the logger mutex.
type history struct {
	buf      []core.Entry
	capacity int
	start    int
}

func newHistory(capacity int) *history {
	return &history{capacity: capacity}
}

func (h *history) push(e core.Entry) {
	if h.capacity <= 0 {
		return
	}
	if len(h.buf) < h.capacity {
		h.buf = append(h.buf, e)
		return
	}
	h.buf[h.start] = e
	h.start = (h.start + 1) % h.capacity
}

// snapshot copies matching entries oldest first.
func (h *history) snapshot(filters []HistoryFilter) []core.Entry {
	out := make([]core.Entry, 0, len(h.buf))
	for i := range h.buf {
		e := h.buf[(h.start+i)%len(h.buf)]
		if matchAll(filters, e) {
			out = append(out, e)
		}
	}
	return out
}

func (h *history) clear() {
	h.buf = nil
	h.start = 0
}

func (h *history) len() int { return len(h.buf) }

func matchAll(filters []HistoryFilter, e core.Entry) bool {
	for _, f := range filters {
		if !f.Match(e) {
			return false
		}
	}
	return true
}
