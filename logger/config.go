package logger

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/theme"
)

// Config is an immutable snapshot of logger behavior. Values are copied
// on every derivation; the Plugins slice is never modified in place.
type Config struct {
	// ColorMode, EmojiMode and UnicodeMode resolve independently: enabled
	// and disabled are absolute, auto asks the capability detector.
	ColorMode   capability.Mode `validate:"capmode"`
	EmojiMode   capability.Mode `validate:"capmode"`
	UnicodeMode capability.Mode `validate:"capmode"`
	// TimestampFormat is a token pattern such as "HH:mm:ss" (see formatter.Timestamp)
	TimestampFormat string `validate:"required"`
	// LogLevel is the minimum level that is recorded and rendered
	LogLevel Level `validate:"loglevel"`
	// EnableHistory keeps accepted entries in a bounded in-memory buffer
	EnableHistory bool
	// MaxHistorySize bounds the history buffer
	MaxHistorySize int `validate:"gt=0"`
	// Theme supplies per-level colors and symbols
	Theme theme.Theme `validate:"-"`
	// Plugins are notified in order
	Plugins []Plugin `validate:"-"`
	// Output is the terminal stream (default: os.Stdout)
	Output io.Writer `validate:"-"`
	// MetadataIndent is the number of spaces before each metadata line
	MetadataIndent int `validate:"gte=0,lte=32"`
	// ErrorHandler receives plugin and render failures. When nil they are
	// rendered as error lines tagged [termlog].
	ErrorHandler func(error) `validate:"-"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		ColorMode:       capability.Auto,
		EmojiMode:       capability.Auto,
		UnicodeMode:     capability.Auto,
		TimestampFormat: formatter.DefaultTimestampFormat,
		LogLevel:        InfoLevel,
		EnableHistory:   true,
		MaxHistorySize:  1000,
		Theme:           theme.Default,
		Output:          os.Stdout,
		MetadataIndent:  2,
	}
}

// clone returns a copy that does not share the plugin slice.
func (c Config) clone() Config {
	c.Plugins = slices.Clone(c.Plugins)
	return c
}

// With returns a copy of c with opts applied in order.
func (c Config) With(opts ...Option) Config {
	c = c.clone()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("capmode", func(fl validator.FieldLevel) bool {
			m, ok := fl.Field().Interface().(capability.Mode)
			return ok && m.Valid()
		})
		_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			l, ok := fl.Field().Interface().(core.Level)
			return ok && l.Valid()
		})
		validate = v
	})
	return validate
}

// Validate reports every invalid field. Values are never clamped.
func (c Config) Validate() error {
	if err := configValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Output == nil {
		return fmt.Errorf("%w: output is not set", ErrInvalidConfig)
	}
	if c.Theme.IsZero() {
		return fmt.Errorf("%w: theme is not set", ErrInvalidConfig)
	}
	for i, p := range c.Plugins {
		if p == nil {
			return fmt.Errorf("%w: plugin %d is nil", ErrInvalidConfig, i)
		}
	}
	return nil
}

// Option overrides one Config field. Options apply last-write-wins.
type Option func(*Config)

// WithColorMode sets the color mode
func WithColorMode(m capability.Mode) Option {
	return func(c *Config) { c.ColorMode = m }
}

// WithEmojiMode sets the emoji (symbol) mode
func WithEmojiMode(m capability.Mode) Option {
	return func(c *Config) { c.EmojiMode = m }
}

// WithUnicodeMode sets the unicode box-drawing mode
func WithUnicodeMode(m capability.Mode) Option {
	return func(c *Config) { c.UnicodeMode = m }
}

// WithTimestampFormat sets the timestamp token pattern
func WithTimestampFormat(pattern string) Option {
	return func(c *Config) { c.TimestampFormat = pattern }
}

// WithLevel sets the minimum level
func WithLevel(level Level) Option {
	return func(c *Config) { c.LogLevel = level }
}

// WithHistory enables or disables the history buffer
func WithHistory(enabled bool) Option {
	return func(c *Config) { c.EnableHistory = enabled }
}

// WithMaxHistorySize sets the history capacity
func WithMaxHistorySize(n int) Option {
	return func(c *Config) { c.MaxHistorySize = n }
}

// WithTheme sets the theme
func WithTheme(t theme.Theme) Option {
	return func(c *Config) { c.Theme = t }
}

// WithPlugins replaces the plugin list
func WithPlugins(plugins ...Plugin) Option {
	return func(c *Config) { c.Plugins = slices.Clone(plugins) }
}

// WithOutput sets the terminal stream
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

// WithMetadataIndent sets the metadata block indentation
func WithMetadataIndent(n int) Option {
	return func(c *Config) { c.MetadataIndent = n }
}

// WithErrorHandler sets the callback for non-fatal engine errors
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) { c.ErrorHandler = fn }
}

// Builder provides a fluent API for building a Config or Logger. Settings
// accumulate and are applied onto DefaultConfig when building; nothing is
// validated until then.
type Builder struct {
	opts    []Option
	plugins []Plugin
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{}
}

// With adds arbitrary options
func (b *Builder) With(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// WithColorMode sets the color mode
func (b *Builder) WithColorMode(m capability.Mode) *Builder { return b.With(WithColorMode(m)) }

// WithEmojiMode sets the emoji mode
func (b *Builder) WithEmojiMode(m capability.Mode) *Builder { return b.With(WithEmojiMode(m)) }

// WithUnicodeMode sets the unicode mode
func (b *Builder) WithUnicodeMode(m capability.Mode) *Builder { return b.With(WithUnicodeMode(m)) }

// WithTimestampFormat sets the timestamp token pattern
func (b *Builder) WithTimestampFormat(pattern string) *Builder {
	return b.With(WithTimestampFormat(pattern))
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level Level) *Builder { return b.With(WithLevel(level)) }

// WithHistory enables or disables history and sets its capacity
func (b *Builder) WithHistory(enabled bool, maxSize int) *Builder {
	return b.With(WithHistory(enabled), WithMaxHistorySize(maxSize))
}

// WithTheme sets the theme
func (b *Builder) WithTheme(t theme.Theme) *Builder { return b.With(WithTheme(t)) }

// WithOutput sets the terminal stream
func (b *Builder) WithOutput(w io.Writer) *Builder { return b.With(WithOutput(w)) }

// WithErrorHandler sets the callback for non-fatal engine errors
func (b *Builder) WithErrorHandler(fn func(error)) *Builder { return b.With(WithErrorHandler(fn)) }

// WithPlugin appends a plugin. Plugins are kept in the order added.
func (b *Builder) WithPlugin(p Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// BuildConfig applies the accumulated settings onto DefaultConfig and
// validates the result.
func (b *Builder) BuildConfig() (Config, error) {
	cfg := DefaultConfig().With(b.opts...)
	cfg.Plugins = append(cfg.Plugins, b.plugins...)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Build creates the Logger instance
func (b *Builder) Build() (*Logger, error) {
	cfg, err := b.BuildConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
