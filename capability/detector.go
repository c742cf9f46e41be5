package capability

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrUnknownMode is returned by ParseMode for values other than
// auto, enabled and disabled.
var ErrUnknownMode = errors.New("unknown capability mode")

// Mode selects how a capability is decided.
type Mode string

const (
	// Auto defers to the Detector.
	Auto Mode = "auto"
	// Enabled forces the capability on.
	Enabled Mode = "enabled"
	// Disabled forces the capability off.
	Disabled Mode = "disabled"
)

// ParseMode converts a string to a Mode. The empty string is Auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Auto:
		return Auto, nil
	case Enabled, "on", "true":
		return Enabled, nil
	case Disabled, "off", "false":
		return Disabled, nil
	default:
		return Auto, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Valid reports whether m is one of the three modes.
func (m Mode) Valid() bool {
	return m == Auto || m == Enabled || m == Disabled
}

// Resolve returns the effective capability: Enabled and Disabled are
// absolute, Auto returns detected.
func (m Mode) Resolve(detected bool) bool {
	switch m {
	case Enabled:
		return true
	case Disabled:
		return false
	default:
		return detected
	}
}

// Capabilities is what an output target supports.
type Capabilities struct {
	Color   bool
	Emoji   bool
	Unicode bool
}

// Detector reads the environment of an output target. The zero value
// uses the process environment.
type Detector struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	// IsTerminal defaults to isatty on the descriptor.
	IsTerminal func(fd uintptr) bool
	// GOOS defaults to runtime.GOOS.
	GOOS string
}

// Detect reports the capabilities of w using the process environment.
func Detect(w io.Writer) Capabilities {
	return Detector{}.Detect(w)
}

// Detect reports the capabilities of w. Writers that are not files are
// never terminals, so everything resolves to unsupported for them
// unless FORCE_COLOR is set.
func (d Detector) Detect(w io.Writer) Capabilities {
	terminal := d.terminal(w)
	caps := Capabilities{
		Color: d.color(terminal),
	}
	if terminal {
		caps.Unicode = d.unicode()
		caps.Emoji = caps.Unicode && d.emoji()
	}
	return caps
}

func (d Detector) lookup(key string) string {
	lookup := d.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, _ := lookup(key)
	return v
}

func (d Detector) goos() string {
	if d.GOOS != "" {
		return d.GOOS
	}
	return runtime.GOOS
}

type fder interface {
	Fd() uintptr
}

func (d Detector) terminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	isTerm := d.IsTerminal
	if isTerm == nil {
		isTerm = func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	return isTerm(f.Fd())
}

func (d Detector) color(terminal bool) bool {
	if d.lookup("NO_COLOR") != "" {
		return false
	}
	if force := d.lookup("FORCE_COLOR"); force != "" {
		return force != "0" && force != "false"
	}
	if !terminal {
		return false
	}
	term := strings.ToLower(d.lookup("TERM"))
	if term == "dumb" {
		return false
	}
	switch strings.ToLower(d.lookup("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}
	if strings.Contains(term, "256color") || strings.Contains(term, "color") {
		return true
	}
	for _, prefix := range []string{"xterm", "screen", "tmux", "vt100", "rxvt", "linux", "ansi", "cygwin", "alacritty", "kitty", "wezterm"} {
		if strings.HasPrefix(term, prefix) {
			return true
		}
	}
	// Windows 10+ consoles understand ANSI sequences without TERM.
	return d.goos() == "windows"
}

func (d Detector) unicode() bool {
	if d.goos() == "windows" {
		return d.lookup("WT_SESSION") != "" ||
			d.lookup("TERM_PROGRAM") == "vscode" ||
			d.lookup("ConEmuTask") != "" ||
			d.lookup("TERM") == "xterm-256color"
	}
	if strings.ToLower(d.lookup("TERM")) == "linux" {
		return false
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.ToLower(d.lookup(key))
		if v == "" {
			continue
		}
		return strings.Contains(v, "utf-8") || strings.Contains(v, "utf8")
	}
	return false
}

func (d Detector) emoji() bool {
	if d.lookup("CI") != "" {
		return false
	}
	return true
}
