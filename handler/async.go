package handler

import (
	"sync"
	"time"

	"github.com/philipp01105/termlog/core"
)

// AsyncConfig configures an Async wrapper
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout is the timeout for the Block policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds how long Close keeps writing queued entries (default: 5s)
	DrainTimeout time.Duration
}

// Async decouples callers from a slow handler with a bounded queue and a
// background goroutine. When the queue is full the per-level
// OverflowPolicy decides whether the entry is dropped, replaces the oldest
// queued entry or blocks for up to BlockTimeout before being written
// synchronously.
type Async struct {
	next           Handler
	queue          chan core.Entry
	wg             sync.WaitGroup
	closed         chan struct{}
	state          sync.RWMutex
	closeOnce      sync.Once
	blockMu        sync.Mutex
	blockTimer     *time.Timer
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	stats          *Stats
	errMu          sync.Mutex
	err            error
}

// NewAsync wraps next with an asynchronous queue
func NewAsync(next Handler, cfg AsyncConfig) *Async {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	h := &Async{
		next:           next,
		queue:          make(chan core.Entry, cfg.BufferSize),
		closed:         make(chan struct{}),
		blockTimer:     NewStoppedTimer(),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		stats:          NewStats(),
	}
	h.wg.Add(1)
	go h.process()
	return h
}

// Handle queues an entry according to its level's overflow policy. After
// Close, entries are written synchronously.
func (h *Async) Handle(entry core.Entry) error {
	// Close waits for in-flight sends so nothing is queued after the drain.
	h.state.RLock()
	defer h.state.RUnlock()

	select {
	case <-h.closed:
		return h.write(entry)
	default:
	}

	policy, ok := h.overflowPolicy[entry.Level()]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case h.queue <- entry:
			return nil
		default:
		}
		// The timer is reused across calls, so blocked callers take turns.
		h.blockMu.Lock()
		defer h.blockMu.Unlock()
		h.blockTimer.Reset(h.blockTimeout)
		defer func() {
			if !h.blockTimer.Stop() {
				select {
				case <-h.blockTimer.C:
				default:
				}
			}
		}()
		select {
		case h.queue <- entry:
			return nil
		case <-h.blockTimer.C:
			// Timeout - fall back to synchronous write
			h.stats.IncrementBlocked()
			return h.write(entry)
		}

	case DropOldest:
		select {
		case h.queue <- entry:
			return nil
		default:
		}
		select {
		case old := <-h.queue:
			h.stats.IncrementDropped(old.Level())
		default:
		}
		select {
		case h.queue <- entry:
		default:
			h.stats.IncrementDropped(entry.Level())
		}
		return nil

	default:
		select {
		case h.queue <- entry:
		default:
			h.stats.IncrementDropped(entry.Level())
		}
		return nil
	}
}

func (h *Async) write(entry core.Entry) error {
	err := h.next.Handle(entry)
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

// process handles async processing. Write errors are kept and reported
// by Close; they do not stop the loop.
func (h *Async) process() {
	defer h.wg.Done()

	for {
		select {
		case entry := <-h.queue:
			h.record(h.write(entry))
		case <-h.closed:
			deadline := time.After(h.drainTimeout)
			for {
				select {
				case entry := <-h.queue:
					h.record(h.write(entry))
				case <-deadline:
					// Timeout reached; count what is left as dropped.
					for {
						select {
						case entry := <-h.queue:
							h.stats.IncrementDropped(entry.Level())
						default:
							return
						}
					}
				default:
					return
				}
			}
		}
	}
}

func (h *Async) record(err error) {
	if err == nil {
		return
	}
	h.errMu.Lock()
	if h.err == nil {
		h.err = err
	}
	h.errMu.Unlock()
}

// Stats returns a snapshot of the queue statistics
func (h *Async) Stats() Snapshot {
	return h.stats.GetSnapshot()
}

// Close drains the queue (bounded by DrainTimeout), then closes the
// wrapped handler. It returns the first background write error, if any,
// together with the close error.
func (h *Async) Close() error {
	first := false
	h.closeOnce.Do(func() {
		first = true
		h.state.Lock()
		close(h.closed)
		h.state.Unlock()
	})
	if !first {
		return nil
	}
	h.wg.Wait()

	h.errMu.Lock()
	err := h.err
	h.errMu.Unlock()
	if closeErr := h.next.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
