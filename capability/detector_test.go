package capability

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func isTerminal(uintptr) bool { return true }

func notTerminal(uintptr) bool { return false }

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Auto, false},
		{"auto", Auto, false},
		{"Enabled", Enabled, false},
		{"on", Enabled, false},
		{"disabled", Disabled, false},
		{"false", Disabled, false},
		{"sometimes", Auto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Resolve(t *testing.T) {
	assert.True(t, Enabled.Resolve(false))
	assert.False(t, Disabled.Resolve(true))
	assert.True(t, Auto.Resolve(true))
	assert.False(t, Auto.Resolve(false))
	assert.False(t, Mode("bogus").Valid())
}

func TestDetect_NonFileWriter(t *testing.T) {
	d := Detector{LookupEnv: env(map[string]string{"TERM": "xterm-256color", "LANG": "en_US.UTF-8"})}
	caps := d.Detect(&bytes.Buffer{})
	assert.Equal(t, Capabilities{}, caps)
}

func TestDetect_ForceColorOnPipe(t *testing.T) {
	d := Detector{
		LookupEnv:  env(map[string]string{"FORCE_COLOR": "1"}),
		IsTerminal: notTerminal,
	}
	caps := d.Detect(os.Stdout)
	assert.True(t, caps.Color)
	assert.False(t, caps.Emoji)
	assert.False(t, caps.Unicode)
}

func TestDetect_Terminal(t *testing.T) {
	tests := []struct {
		name string
		goos string
		vars map[string]string
		want Capabilities
	}{
		{
			name: "utf8 xterm",
			goos: "linux",
			vars: map[string]string{"TERM": "xterm-256color", "LANG": "en_US.UTF-8"},
			want: Capabilities{Color: true, Emoji: true, Unicode: true},
		},
		{
			name: "truecolor",
			goos: "darwin",
			vars: map[string]string{"TERM": "foo", "COLORTERM": "truecolor", "LC_ALL": "C.UTF-8"},
			want: Capabilities{Color: true, Emoji: true, Unicode: true},
		},
		{
			name: "no color",
			goos: "linux",
			vars: map[string]string{"TERM": "xterm-256color", "NO_COLOR": "1", "LANG": "en_US.UTF-8"},
			want: Capabilities{Color: false, Emoji: true, Unicode: true},
		},
		{
			name: "dumb terminal",
			goos: "linux",
			vars: map[string]string{"TERM": "dumb"},
			want: Capabilities{},
		},
		{
			name: "linux console",
			goos: "linux",
			vars: map[string]string{"TERM": "linux", "LANG": "en_US.UTF-8"},
			want: Capabilities{Color: true},
		},
		{
			name: "ci disables emoji",
			goos: "linux",
			vars: map[string]string{"TERM": "xterm", "LANG": "en_US.UTF-8", "CI": "true"},
			want: Capabilities{Color: true, Unicode: true},
		},
		{
			name: "windows terminal",
			goos: "windows",
			vars: map[string]string{"WT_SESSION": "abc"},
			want: Capabilities{Color: true, Emoji: true, Unicode: true},
		},
		{
			name: "legacy windows console",
			goos: "windows",
			vars: map[string]string{},
			want: Capabilities{Color: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detector{
				LookupEnv:  env(tt.vars),
				IsTerminal: isTerminal,
				GOOS:       tt.goos,
			}
			assert.Equal(t, tt.want, d.Detect(os.Stdout))
		})
	}
}
