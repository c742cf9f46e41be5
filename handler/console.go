package handler

import (
	"io"
	"os"
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
)

// Console writes formatted entries to a terminal stream. Each entry,
// including its metadata block, is written with a single Write call while
// holding the stream lock, so concurrent loggers never interleave lines.
type Console struct {
	writer    io.Writer
	formatter formatter.Formatter
	mu        *sync.Mutex
	stats     *Stats
}

// ConsoleConfig holds configuration for the console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: ConsoleFormatter without color)
	Formatter formatter.Formatter
}

// NewConsole creates a new console handler
func NewConsole(cfg ConsoleConfig) *Console {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewConsoleFormatter(formatter.ConsoleConfig{})
	}
	return &Console{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		mu:        &sync.Mutex{},
		stats:     NewStats(),
	}
}

// WithFormatter returns a handler that renders with f but shares the
// stream, its lock and the statistics with h.
func (h *Console) WithFormatter(f formatter.Formatter) *Console {
	return &Console{
		writer:    h.writer,
		formatter: f,
		mu:        h.mu,
		stats:     h.stats,
	}
}

// Formatter returns the handler's formatter.
func (h *Console) Formatter() formatter.Formatter { return h.formatter }

// Handle formats and writes an entry. A formatter error does not stop the
// write when the formatter produced degraded output; both the formatting
// and the write error are returned.
func (h *Console) Handle(entry core.Entry) error {
	data, fmtErr := h.formatter.Format(entry)
	if len(data) == 0 {
		return fmtErr
	}

	h.mu.Lock()
	_, writeErr := h.writer.Write(data)
	h.mu.Unlock()

	if writeErr == nil {
		h.stats.IncrementProcessed()
	}
	return multierr.Append(fmtErr, writeErr)
}

// Stats returns a snapshot of the current statistics
func (h *Console) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close is a no-op; the console does not own its writer.
func (h *Console) Close() error {
	return nil
}
