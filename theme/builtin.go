package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/philipp01105/termlog/core"
)

// ErrUnknownTheme is returned by ByName for unregistered names.
var ErrUnknownTheme = errors.New("unknown theme")

var roundedBox = Box{
	TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯",
	Horizontal: "─", Vertical: "│", Cross: "┼", TeeLeft: "├", TeeRight: "┤",
}

var heavyBox = Box{
	TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛",
	Horizontal: "━", Vertical: "┃", Cross: "╋", TeeLeft: "┣", TeeRight: "┫",
}

var doubleBox = Box{
	TopLeft: "╔", TopRight: "╗", BottomLeft: "╚", BottomRight: "╝",
	Horizontal: "═", Vertical: "║", Cross: "╬", TeeLeft: "╠", TeeRight: "╣",
}

var emojiSymbols = map[core.Level]string{
	core.DebugLevel:    "🔍",
	core.InfoLevel:     "ℹ️",
	core.SuccessLevel:  "✅",
	core.WarningLevel:  "⚠️",
	core.ErrorLevel:    "❌",
	core.CriticalLevel: "🚨",
}

var glyphSymbols = map[core.Level]string{
	core.DebugLevel:    "●",
	core.InfoLevel:     "ℹ",
	core.SuccessLevel:  "✔",
	core.WarningLevel:  "▲",
	core.ErrorLevel:    "✖",
	core.CriticalLevel: "‼",
}

var (
	// Default is the theme used when none is configured.
	Default = New(Spec{
		Name: "default",
		Colors: map[core.Level]text.Colors{
			core.DebugLevel:    {text.FgHiBlack},
			core.InfoLevel:     {text.FgCyan},
			core.SuccessLevel:  {text.FgGreen},
			core.WarningLevel:  {text.FgYellow},
			core.ErrorLevel:    {text.FgRed},
			core.CriticalLevel: {text.FgHiWhite, text.BgRed, text.Bold},
		},
		Symbols: emojiSymbols,
		Muted:   text.Colors{text.FgHiBlack},
		Box:     roundedBox,
	})

	// Minimal keeps color to warnings and above and uses plain glyphs.
	Minimal = New(Spec{
		Name: "minimal",
		Colors: map[core.Level]text.Colors{
			core.WarningLevel:  {text.FgYellow},
			core.ErrorLevel:    {text.FgRed},
			core.CriticalLevel: {text.FgRed, text.Bold},
		},
		Symbols: glyphSymbols,
		Muted:   text.Colors{text.Faint},
		Box:     roundedBox,
	})

	// Ocean is a blue-green palette.
	Ocean = New(Spec{
		Name: "ocean",
		Colors: map[core.Level]text.Colors{
			core.DebugLevel:    {text.FgBlue},
			core.InfoLevel:     {text.FgHiCyan},
			core.SuccessLevel:  {text.FgHiGreen},
			core.WarningLevel:  {text.FgHiYellow},
			core.ErrorLevel:    {text.FgHiMagenta},
			core.CriticalLevel: {text.FgHiWhite, text.BgBlue, text.Bold},
		},
		Symbols: map[core.Level]string{
			core.DebugLevel:    "🐚",
			core.InfoLevel:     "🌊",
			core.SuccessLevel:  "🐬",
			core.WarningLevel:  "🦀",
			core.ErrorLevel:    "🦈",
			core.CriticalLevel: "🌀",
		},
		Muted: text.Colors{text.FgBlue, text.Faint},
		Box:   doubleBox,
	})

	// Neon uses bright, bold colors.
	Neon = New(Spec{
		Name: "neon",
		Colors: map[core.Level]text.Colors{
			core.DebugLevel:    {text.FgHiMagenta},
			core.InfoLevel:     {text.FgHiCyan, text.Bold},
			core.SuccessLevel:  {text.FgHiGreen, text.Bold},
			core.WarningLevel:  {text.FgHiYellow, text.Bold},
			core.ErrorLevel:    {text.FgHiRed, text.Bold},
			core.CriticalLevel: {text.FgBlack, text.BgHiRed, text.Bold, text.BlinkSlow},
		},
		Symbols: map[core.Level]string{
			core.DebugLevel:    "✨",
			core.InfoLevel:     "💡",
			core.SuccessLevel:  "🚀",
			core.WarningLevel:  "⚡",
			core.ErrorLevel:    "💥",
			core.CriticalLevel: "🔥",
		},
		Muted: text.Colors{text.FgHiBlack},
		Box:   heavyBox,
	})
)

var builtins = map[string]Theme{
	Default.Name(): Default,
	Minimal.Name(): Minimal,
	Ocean.Name():   Ocean,
	Neon.Name():    Neon,
}

// ByName returns a built-in theme. Matching is case-insensitive.
func ByName(name string) (Theme, error) {
	t, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names lists the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
