package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/theme"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, capability.Auto, cfg.ColorMode)
	assert.Equal(t, capability.Auto, cfg.EmojiMode)
	assert.Equal(t, capability.Auto, cfg.UnicodeMode)
	assert.Equal(t, "HH:mm:ss", cfg.TimestampFormat)
	assert.Equal(t, InfoLevel, cfg.LogLevel)
	assert.True(t, cfg.EnableHistory)
	assert.Equal(t, 1000, cfg.MaxHistorySize)
	assert.Equal(t, "default", cfg.Theme.Name())
	assert.Equal(t, os.Stdout, cfg.Output)
	assert.Empty(t, cfg.Plugins)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero history size", WithMaxHistorySize(0)},
		{"negative history size", WithMaxHistorySize(-5)},
		{"unknown level", WithLevel(core.Level(17))},
		{"unknown color mode", WithColorMode("sometimes")},
		{"unknown emoji mode", WithEmojiMode("maybe")},
		{"unknown unicode mode", WithUnicodeMode("x")},
		{"empty timestamp format", WithTimestampFormat("")},
		{"nil output", WithOutput(nil)},
		{"zero theme", WithTheme(theme.Theme{})},
		{"nil plugin", WithPlugins(nil)},
		{"negative indent", WithMetadataIndent(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultConfig().With(tt.opt).Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_ValidateExposesFieldErrors(t *testing.T) {
	err := DefaultConfig().With(WithMaxHistorySize(0)).Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "MaxHistorySize", verrs[0].Field())
}

func TestConfig_WithDoesNotMutate(t *testing.T) {
	p := &recordingPlugin{name: "a"}
	base := DefaultConfig().With(WithPlugins(p))
	derived := base.With(WithLevel(ErrorLevel), WithPlugins())

	assert.Equal(t, InfoLevel, base.LogLevel)
	assert.Len(t, base.Plugins, 1)
	assert.Equal(t, ErrorLevel, derived.LogLevel)
	assert.Empty(t, derived.Plugins)
}

func TestBuilder(t *testing.T) {
	a := &recordingPlugin{name: "a"}
	b := &recordingPlugin{name: "b"}
	var buf bytes.Buffer

	cfg, err := NewBuilder().
		WithColorMode(capability.Enabled).
		WithEmojiMode(capability.Disabled).
		WithUnicodeMode(capability.Enabled).
		WithTimestampFormat("YYYY-MM-DD").
		WithLevel(WarningLevel).
		WithHistory(true, 10).
		WithTheme(theme.Neon).
		WithOutput(&buf).
		WithPlugin(a).
		WithPlugin(b).
		BuildConfig()
	require.NoError(t, err)

	assert.Equal(t, capability.Enabled, cfg.ColorMode)
	assert.Equal(t, capability.Disabled, cfg.EmojiMode)
	assert.Equal(t, capability.Enabled, cfg.UnicodeMode)
	assert.Equal(t, "YYYY-MM-DD", cfg.TimestampFormat)
	assert.Equal(t, WarningLevel, cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxHistorySize)
	assert.Equal(t, "neon", cfg.Theme.Name())
	assert.Equal(t, []Plugin{a, b}, cfg.Plugins)
}

func TestBuilder_LastWriteWins(t *testing.T) {
	cfg, err := NewBuilder().WithLevel(ErrorLevel).WithLevel(DebugLevel).BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, cfg.LogLevel)
}

func TestBuilder_RejectsInvalid(t *testing.T) {
	_, err := NewBuilder().WithHistory(true, 0).Build()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuilder_BuildInitializesPlugins(t *testing.T) {
	p := &recordingPlugin{name: "p"}
	l, err := NewBuilder().WithOutput(&bytes.Buffer{}).WithPlugin(p).Build()
	require.NoError(t, err)
	assert.True(t, p.initialized())
	assert.Len(t, l.Plugins(), 1)
}

func TestParseConfig(t *testing.T) {
	b, err := ParseConfig([]byte(`
color: disabled
emoji: "on"
unicode: auto
timestampFormat: "YYYY-MM-DD HH:mm:ss"
logLevel: WARN
enableHistory: false
maxHistorySize: 50
theme: Ocean
`))
	require.NoError(t, err)

	cfg, err := b.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, capability.Disabled, cfg.ColorMode)
	assert.Equal(t, capability.Enabled, cfg.EmojiMode)
	assert.Equal(t, capability.Auto, cfg.UnicodeMode)
	assert.Equal(t, "YYYY-MM-DD HH:mm:ss", cfg.TimestampFormat)
	assert.Equal(t, WarningLevel, cfg.LogLevel)
	assert.False(t, cfg.EnableHistory)
	assert.Equal(t, 50, cfg.MaxHistorySize)
	assert.Equal(t, "ocean", cfg.Theme.Name())
}

func TestParseConfig_EmptyKeepsDefaults(t *testing.T) {
	b, err := ParseConfig(nil)
	require.NoError(t, err)
	cfg, err := b.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultConfig().MaxHistorySize, cfg.MaxHistorySize)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"unknown key", "colour: auto\n", nil},
		{"bad mode", "color: rainbow\n", capability.ErrUnknownMode},
		{"bad level", "logLevel: loud\n", core.ErrUnknownLevel},
		{"bad theme", "theme: sepia\n", theme.ErrUnknownTheme},
		{"bad yaml", "color: [\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseConfig_InvalidCapacityFailsAtBuild(t *testing.T) {
	b, err := ParseConfig([]byte("maxHistorySize: 0\n"))
	require.NoError(t, err)
	_, err = b.BuildConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logLevel: debug\n"), 0o600))

	b, err := LoadConfigFile(path)
	require.NoError(t, err)
	cfg, err := b.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, cfg.LogLevel)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
