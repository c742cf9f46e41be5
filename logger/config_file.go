package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/theme"
)

// fileConfig is the YAML shape of a configuration file. Omitted keys keep
// their defaults.
type fileConfig struct {
	Color           string `yaml:"color"`
	Emoji           string `yaml:"emoji"`
	Unicode         string `yaml:"unicode"`
	TimestampFormat string `yaml:"timestampFormat"`
	LogLevel        string `yaml:"logLevel"`
	EnableHistory   *bool  `yaml:"enableHistory"`
	MaxHistorySize  *int   `yaml:"maxHistorySize"`
	Theme           string `yaml:"theme"`
}

// ParseConfig reads YAML configuration into a Builder. Unknown keys and
// unknown values are errors; validation of the resulting configuration
// happens when the Builder is built.
//
//	color: auto          # auto | enabled | disabled
//	emoji: disabled
//	unicode: auto
//	timestampFormat: "YYYY-MM-DD HH:mm:ss"
//	logLevel: warning
//	enableHistory: true
//	maxHistorySize: 500
//	theme: ocean
func ParseConfig(data []byte) (*Builder, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	b := NewBuilder()
	modes := []struct {
		key   string
		value string
		opt   func(capability.Mode) Option
	}{
		{"color", fc.Color, WithColorMode},
		{"emoji", fc.Emoji, WithEmojiMode},
		{"unicode", fc.Unicode, WithUnicodeMode},
	}
	for _, m := range modes {
		if m.value == "" {
			continue
		}
		mode, err := capability.ParseMode(m.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, m.key, err)
		}
		b.With(m.opt(mode))
	}

	if fc.TimestampFormat != "" {
		b.WithTimestampFormat(fc.TimestampFormat)
	}
	if fc.LogLevel != "" {
		level, err := ParseLevel(fc.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: logLevel: %w", ErrInvalidConfig, err)
		}
		b.WithLevel(level)
	}
	if fc.EnableHistory != nil {
		b.With(WithHistory(*fc.EnableHistory))
	}
	if fc.MaxHistorySize != nil {
		b.With(WithMaxHistorySize(*fc.MaxHistorySize))
	}
	if fc.Theme != "" {
		t, err := theme.ByName(fc.Theme)
		if err != nil {
			return nil, fmt.Errorf("%w: theme: %w", ErrInvalidConfig, err)
		}
		b.WithTheme(t)
	}
	return b, nil
}

// LoadConfigFile reads a YAML configuration file into a Builder.
func LoadConfigFile(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
