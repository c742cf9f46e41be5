package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/theme"
)

// JSON encodes v with indent spaces per level (0 for compact output).
// Key order follows the input: core.Metadata keeps insertion order and Go
// maps are sorted by key. With colorize, keys, values and punctuation are
// wrapped in fixed ANSI styles that do not depend on the theme.
func JSON(v any, indent int, colorize bool) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
			return "", err
		}
		data = buf.Bytes()
	}
	if colorize {
		return colorizeJSON(string(data)), nil
	}
	return string(data), nil
}

var (
	jsonKeyColor     = text.Colors{text.FgCyan}.EscapeSeq()
	jsonStringColor  = text.Colors{text.FgGreen}.EscapeSeq()
	jsonNumberColor  = text.Colors{text.FgYellow}.EscapeSeq()
	jsonLiteralColor = text.Colors{text.FgMagenta}.EscapeSeq()
	jsonPunctColor   = text.Colors{text.FgHiBlack}.EscapeSeq()
)

// colorizeJSON styles already-valid JSON token by token.
func colorizeJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(s) && s[j] != '"' {
				if s[j] == '\\' {
					j++
				}
				j++
			}
			if j < len(s) {
				j++
			}
			k := j
			for k < len(s) && (s[k] == ' ' || s[k] == '\n' || s[k] == '\t') {
				k++
			}
			if k < len(s) && s[k] == ':' {
				b.WriteString(theme.Paint(s[i:j], jsonKeyColor))
			} else {
				b.WriteString(theme.Paint(s[i:j], jsonStringColor))
			}
			i = j
		case strings.IndexByte("{}[],:", c) >= 0:
			b.WriteString(theme.Paint(s[i:i+1], jsonPunctColor))
			i++
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(s) && strings.IndexByte("0123456789.eE+-", s[j]) >= 0 {
				j++
			}
			b.WriteString(theme.Paint(s[i:j], jsonNumberColor))
			i = j
		case c >= 'a' && c <= 'z':
			j := i + 1
			for j < len(s) && s[j] >= 'a' && s[j] <= 'z' {
				j++
			}
			b.WriteString(theme.Paint(s[i:j], jsonLiteralColor))
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// JSONFormatter formats entries as JSON lines
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.formatJSONToBuffer(entry, buf); err != nil {
		return nil, err
	}
	return copyBytes(buf), nil
}

// FormatTo formats an entry as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(entry core.Entry, w io.Writer) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := f.formatJSONToBuffer(entry, buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// formatJSONToBuffer builds the JSON object directly into the buffer. The
// field names match core.Entry's JSON encoding so lines parse back into
// entries.
func (f *JSONFormatter) formatJSONToBuffer(entry core.Entry, buf *bytes.Buffer) error {
	var md []byte
	if entry.HasMetadata() {
		var err error
		if md, err = entry.Metadata().MarshalJSON(); err != nil {
			return err
		}
	}

	buf.WriteString(`{"timestamp":"`)
	buf.Write(entry.Time().AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteString(`","level":"`)
	buf.WriteString(entry.Level().String())
	buf.WriteString(`","message":"`)
	appendJSONString(buf, entry.Message())
	buf.WriteByte('"')

	if md != nil {
		buf.WriteString(`,"metadata":`)
		buf.Write(md)
	}
	if ns := entry.Namespace(); ns != "" {
		buf.WriteString(`,"namespace":"`)
		appendJSONString(buf, ns)
		buf.WriteByte('"')
	}

	buf.WriteString("}\n")
	return nil
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
