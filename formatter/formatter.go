package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/termlog/core"
)

// Formatter defines the interface for entry formatters
type Formatter interface {
	// Format formats an entry into bytes. A formatter that had to degrade
	// (for example because a metadata value could not be encoded) returns
	// the degraded output together with the error.
	Format(entry core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats an entry and writes it directly to the writer
	FormatTo(entry core.Entry, w io.Writer) error
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat is a Go time layout (empty for RFC3339Nano)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

func copyBytes(buf *bytes.Buffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
