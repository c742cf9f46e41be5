package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/termlog/core"
)

// Multi sends log entries to multiple handlers
type Multi struct {
	handlers []Handler
}

// NewMulti creates a new multi-handler
func NewMulti(handlers ...Handler) *Multi {
	return &Multi{handlers: append([]Handler(nil), handlers...)}
}

// Handle sends the entry to every handler. A failing handler does not stop
// the others; all errors are combined.
func (h *Multi) Handle(entry core.Entry) error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Handle(entry))
	}
	return err
}

// Close closes all handlers
func (h *Multi) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
