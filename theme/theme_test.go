package theme

import (
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/core"
)

func TestBuiltinsCoverEveryLevel(t *testing.T) {
	for _, name := range Names() {
		th, err := ByName(name)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			for _, l := range core.Levels() {
				assert.NotEmpty(t, th.Symbol(l), "symbol for %s", l)
			}
			assert.NotEmpty(t, th.Box().Horizontal)
		})
	}
}

func TestByName(t *testing.T) {
	th, err := ByName(" Ocean ")
	require.NoError(t, err)
	assert.Equal(t, "ocean", th.Name())

	_, err = ByName("solarized")
	assert.ErrorIs(t, err, ErrUnknownTheme)

	assert.Equal(t, []string{"default", "minimal", "neon", "ocean"}, Names())
}

func TestNeon_CriticalBlinks(t *testing.T) {
	want := text.Colors{text.FgBlack, text.BgHiRed, text.Bold, text.BlinkSlow}.EscapeSeq()
	assert.Equal(t, want, Neon.Color(core.CriticalLevel))
}

func TestTheme_ColorAndSymbol(t *testing.T) {
	assert.Equal(t, text.Colors{text.FgRed}.EscapeSeq(), Default.Color(core.ErrorLevel))
	assert.Equal(t, "", Minimal.Color(core.InfoLevel))
	assert.Equal(t, "", Default.Color(core.Level(99)))
	assert.Equal(t, "", Default.Symbol(core.Level(-1)))
}

func TestNew_IsImmutable(t *testing.T) {
	colors := map[core.Level]text.Colors{core.InfoLevel: {text.FgBlue}}
	th := New(Spec{Name: "custom", Colors: colors})
	before := th.Color(core.InfoLevel)

	colors[core.InfoLevel][0] = text.FgRed
	assert.Equal(t, before, th.Color(core.InfoLevel))
}

func TestBoxFor(t *testing.T) {
	assert.Equal(t, "╭", Default.BoxFor(true).TopLeft)
	assert.Equal(t, ASCIIBox, Default.BoxFor(false))
}

func TestPaint(t *testing.T) {
	assert.Equal(t, "x", Paint("x", ""))
	assert.Equal(t, "", Paint("", "\x1b[31m"))
	assert.Equal(t, "\x1b[31mx"+text.EscapeReset, Paint("x", "\x1b[31m"))
}
