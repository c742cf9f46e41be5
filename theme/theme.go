package theme

import (
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/philipp01105/termlog/core"
)

// Box is a set of box-drawing glyphs for renderers that draw frames.
type Box struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	Cross       string
	TeeLeft     string
	TeeRight    string
}

// ASCIIBox draws with plain ASCII and is used when unicode is unsupported.
var ASCIIBox = Box{
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	Horizontal: "-", Vertical: "|", Cross: "+", TeeLeft: "+", TeeRight: "+",
}

// Theme is an immutable named bundle of per-level colors and symbols
// plus a box glyph set. Build one with New; copies are safe to share.
type Theme struct {
	name    string
	colors  [core.LevelCount]text.Colors
	symbols [core.LevelCount]string
	muted   text.Colors
	box     Box
}

// Spec describes a theme for New.
type Spec struct {
	Name    string
	Colors  map[core.Level]text.Colors
	Symbols map[core.Level]string
	Muted   text.Colors
	Box     Box
}

// New builds a Theme from spec. Levels missing from the maps get no
// color and no symbol.
func New(spec Spec) Theme {
	t := Theme{
		name:  spec.Name,
		muted: cloneColors(spec.Muted),
		box:   spec.Box,
	}
	for _, l := range core.Levels() {
		t.colors[l] = cloneColors(spec.Colors[l])
		t.symbols[l] = spec.Symbols[l]
	}
	return t
}

func escapeSeq(c text.Colors) string {
	if len(c) == 0 {
		return ""
	}
	return c.EscapeSeq()
}

func cloneColors(c text.Colors) text.Colors {
	if c == nil {
		return nil
	}
	out := make(text.Colors, len(c))
	copy(out, c)
	return out
}

// Name returns the theme's name.
func (t Theme) Name() string { return t.name }

// IsZero reports whether t was never built.
func (t Theme) IsZero() bool { return t.name == "" }

// Color returns the escape sequence for level, or "" for unknown levels.
func (t Theme) Color(level core.Level) string {
	if !level.Valid() {
		return ""
	}
	return escapeSeq(t.colors[level])
}

// Symbol returns the symbol for level, or "" for unknown levels.
func (t Theme) Symbol(level core.Level) string {
	if !level.Valid() {
		return ""
	}
	return t.symbols[level]
}

// Muted returns the escape sequence used for secondary text such as
// timestamps.
func (t Theme) Muted() string { return escapeSeq(t.muted) }

// Box returns the theme's box glyphs.
func (t Theme) Box() Box { return t.box }

// BoxFor returns the theme's glyphs when unicode is supported and
// ASCIIBox otherwise.
func (t Theme) BoxFor(unicode bool) Box {
	if unicode {
		return t.box
	}
	return ASCIIBox
}

// Paint wraps s in the escape sequence seq. An empty seq returns s.
func Paint(s, seq string) string {
	if seq == "" || s == "" {
		return s
	}
	return seq + s + text.EscapeReset
}
