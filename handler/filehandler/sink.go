package filehandler

import (
	"bufio"
	"errors"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/handler"
)

// ErrClosed is returned when writing to a closed file handler.
var ErrClosed = errors.New("file handler closed")

// File is a synchronous file handler. Output is buffered and flushed on
// Flush, Rotate and Close.
type File struct {
	mu              sync.Mutex
	out             *lumberjack.Logger
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	stats           *handler.Stats
	closed          bool
}

func newFile(cfg Config) *File {
	out := newLumberjack(cfg)
	f := &File{
		out:       out,
		bufWriter: bufio.NewWriterSize(out, 4096),
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	// Cache WriterFormatter for the direct-write path
	f.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	return f
}

// Handle formats and writes an entry
func (f *File) Handle(entry core.Entry) error {
	if f.writerFormatter != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.closed {
			return ErrClosed
		}
		if err := f.writerFormatter.FormatTo(entry, f.bufWriter); err != nil {
			return err
		}
		f.stats.IncrementProcessed()
		return nil
	}

	data, fmtErr := f.formatter.Format(entry)
	if len(data) == 0 {
		return fmtErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if _, err := f.bufWriter.Write(data); err != nil {
		return err
	}
	f.stats.IncrementProcessed()
	return fmtErr
}

// Flush writes buffered output to the file
func (f *File) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	return f.bufWriter.Flush()
}

// Rotate flushes buffered output and starts a new file, keeping the old
// one as a backup.
func (f *File) Rotate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.bufWriter.Flush(); err != nil {
		return err
	}
	return f.out.Rotate()
}

// Stats returns a snapshot of the current statistics
func (f *File) Stats() handler.Snapshot {
	return f.stats.GetSnapshot()
}

// Close flushes and closes the file. Closing twice is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	flushErr := f.bufWriter.Flush()
	closeErr := f.out.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
