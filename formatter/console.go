package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/theme"
)

// ConsoleConfig holds the resolved rendering choices for a terminal.
type ConsoleConfig struct {
	// Theme supplies colors and symbols (default: theme.Default)
	Theme theme.Theme
	// Color, Emoji and Unicode are effective capabilities, already
	// resolved from configuration modes and detection.
	Color   bool
	Emoji   bool
	Unicode bool
	// TimestampFormat is a token pattern for Timestamp (default: HH:mm:ss)
	TimestampFormat string
	// MetadataIndent is the number of spaces before each metadata line (default: 2)
	MetadataIndent int
}

// ConsoleFormatter renders entries for a terminal:
//
//	[timestamp] symbol message
//	  {
//	    "key": "value"
//	  }
type ConsoleFormatter struct {
	cfg    ConsoleConfig
	indent string
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(cfg ConsoleConfig) *ConsoleFormatter {
	if cfg.Theme.IsZero() {
		cfg.Theme = theme.Default
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	if cfg.MetadataIndent <= 0 {
		cfg.MetadataIndent = 2
	}
	return &ConsoleFormatter{cfg: cfg, indent: strings.Repeat(" ", cfg.MetadataIndent)}
}

// Config returns the formatter's configuration.
func (f *ConsoleFormatter) Config() ConsoleConfig { return f.cfg }

// Box returns the box glyphs matching the resolved unicode support, for
// renderers that draw frames around console output.
func (f *ConsoleFormatter) Box() theme.Box {
	return f.cfg.Theme.BoxFor(f.cfg.Unicode)
}

// Format renders the entry line and, when present, its metadata block.
// If the metadata cannot be encoded as JSON the block falls back to raw
// key=value lines and the encoding error is returned with the output.
func (f *ConsoleFormatter) Format(entry core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	err := f.formatToBuffer(entry, buf)
	return copyBytes(buf), err
}

// formatToBuffer writes the formatted entry into the given buffer
func (f *ConsoleFormatter) formatToBuffer(entry core.Entry, buf *bytes.Buffer) error {
	th := f.cfg.Theme
	level := entry.Level()

	stamp := "[" + Timestamp(entry.Time(), f.cfg.TimestampFormat) + "]"
	body := entry.Message()
	if f.cfg.Emoji {
		if sym := th.Symbol(level); sym != "" {
			body = sym + " " + body
		}
	}
	if f.cfg.Color {
		stamp = theme.Paint(stamp, th.Muted())
		body = theme.Paint(body, th.Color(level))
	}

	buf.WriteString(stamp)
	buf.WriteByte(' ')
	buf.WriteString(body)
	buf.WriteByte('\n')

	if !entry.HasMetadata() {
		return nil
	}

	md := entry.Metadata()
	block, err := JSON(md, 2, f.cfg.Color)
	if err != nil {
		for _, field := range md {
			buf.WriteString(f.indent)
			buf.WriteString(field.Key)
			buf.WriteByte('=')
			buf.WriteString(field.StringValue())
			buf.WriteByte('\n')
		}
		return fmt.Errorf("format metadata: %w", err)
	}
	for _, line := range strings.Split(block, "\n") {
		buf.WriteString(f.indent)
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return nil
}
