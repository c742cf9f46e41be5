package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/handler"
)

const (
	stateActive int32 = iota
	stateShuttingDown
	stateTerminated
)

// Logger is the logging engine. It filters entries by level, keeps a
// bounded history, notifies plugins and renders to the console. All
// methods are safe for concurrent use.
type Logger struct {
	cfg       Config
	namespace string
	caps      capability.Capabilities
	console   *handler.Console

	mu       sync.Mutex // guards history, plugins and stopping
	history  *history
	plugins  []Plugin // copy-on-write
	inherit  []Plugin // plugins owned by an ancestor
	stopping bool

	state atomic.Int32
	done  chan struct{}
}

// New creates a Logger from a validated copy of cfg and initializes its
// plugins in order. Initialization failures are reported through the
// error handler; the plugin stays registered.
func New(cfg Config) (*Logger, error) {
	cfg = cfg.clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := newLogger(cfg, "", nil)
	for _, p := range l.plugins {
		l.initialize(p)
	}
	return l, nil
}

// newLogger wires a logger without running plugin hooks. A non-nil parent
// console is shared when the output stream is the same.
func newLogger(cfg Config, namespace string, parent *handler.Console) *Logger {
	caps := resolveCapabilities(cfg)
	f := formatter.NewConsoleFormatter(formatter.ConsoleConfig{
		Theme:           cfg.Theme,
		Color:           caps.Color,
		Emoji:           caps.Emoji,
		Unicode:         caps.Unicode,
		TimestampFormat: cfg.TimestampFormat,
		MetadataIndent:  cfg.MetadataIndent,
	})

	var console *handler.Console
	if parent != nil {
		console = parent.WithFormatter(f)
	} else {
		console = handler.NewConsole(handler.ConsoleConfig{Writer: cfg.Output, Formatter: f})
	}

	l := &Logger{
		cfg:       cfg,
		namespace: namespace,
		caps:      caps,
		console:   console,
		plugins:   slices.Clip(cfg.Plugins),
		done:      make(chan struct{}),
	}
	if cfg.EnableHistory {
		l.history = newHistory(cfg.MaxHistorySize)
	}
	return l
}

// resolveCapabilities applies each mode to what the output supports.
func resolveCapabilities(cfg Config) capability.Capabilities {
	detected := capability.Detect(cfg.Output)
	return capability.Capabilities{
		Color:   cfg.ColorMode.Resolve(detected.Color),
		Emoji:   cfg.EmojiMode.Resolve(detected.Emoji),
		Unicode: cfg.UnicodeMode.Resolve(detected.Unicode),
	}
}

// Config returns a copy of the logger's configuration, including plugins
// registered with Use.
func (l *Logger) Config() Config {
	cfg := l.cfg.clone()
	l.mu.Lock()
	cfg.Plugins = slices.Clone(l.plugins)
	l.mu.Unlock()
	return cfg
}

// Namespace returns the colon-joined namespace, or "" for a root logger.
func (l *Logger) Namespace() string { return l.namespace }

// Capabilities returns the effective color, emoji and unicode support.
func (l *Logger) Capabilities() capability.Capabilities { return l.caps }

// Enabled reports whether entries at level pass the level filter.
func (l *Logger) Enabled(level Level) bool {
	return level.Valid() && level >= l.cfg.LogLevel && l.state.Load() != stateTerminated
}

// Log records, dispatches and renders an entry. Entries below the
// configured level are discarded before any work is done. After Shutdown
// has completed, Log does nothing.
func (l *Logger) Log(level Level, msg string, fields ...core.Field) {
	if level < l.cfg.LogLevel && level.Valid() {
		return
	}
	l.log(xclock.Now(), level, msg, fields)
}

func (l *Logger) log(t time.Time, level Level, msg string, fields []core.Field) {
	if l.state.Load() == stateTerminated {
		return
	}
	if !level.Valid() {
		l.report(fmt.Errorf("log %q: %w: %d", msg, core.ErrUnknownLevel, int8(level)))
		return
	}
	if l.namespace != "" {
		msg = "[" + l.namespace + "] " + msg
	}
	entry := core.NewEntry(t, level, msg, l.namespace, fields...)

	l.mu.Lock()
	if l.history != nil {
		l.history.push(entry)
	}
	plugins := l.plugins
	l.mu.Unlock()

	for _, p := range plugins {
		o, ok := p.(Observer)
		if !ok {
			continue
		}
		if err := callHook(p, HookObserve, func() error { return o.Observe(entry) }); err != nil {
			l.report(err)
		}
	}

	if err := l.console.Handle(entry); err != nil {
		l.report(&RenderError{Err: err})
	}
}

// report hands a non-fatal error to the configured handler, or renders it
// as an error line that bypasses history and plugins.
func (l *Logger) report(err error) {
	if l.cfg.ErrorHandler != nil {
		l.cfg.ErrorHandler(err)
		return
	}
	entry := core.NewEntry(xclock.Now(), ErrorLevel, "[termlog] "+err.Error(), l.namespace)
	_ = l.console.Handle(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) { l.Log(DebugLevel, msg, fields...) }

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) { l.Log(InfoLevel, msg, fields...) }

// Success logs a success message
func (l *Logger) Success(msg string, fields ...core.Field) { l.Log(SuccessLevel, msg, fields...) }

// Warning logs a warning message
func (l *Logger) Warning(msg string, fields ...core.Field) { l.Log(WarningLevel, msg, fields...) }

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) { l.Log(ErrorLevel, msg, fields...) }

// Critical logs a critical message
func (l *Logger) Critical(msg string, fields ...core.Field) { l.Log(CriticalLevel, msg, fields...) }

// Logf logs a formatted message at the given level
func (l *Logger) Logf(level Level, format string, args ...any) {
	if level < l.cfg.LogLevel && level.Valid() {
		return
	}
	l.log(xclock.Now(), level, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) { l.Logf(DebugLevel, format, args...) }

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) { l.Logf(InfoLevel, format, args...) }

// Successf logs a success message with formatting
func (l *Logger) Successf(format string, args ...any) { l.Logf(SuccessLevel, format, args...) }

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...any) { l.Logf(WarningLevel, format, args...) }

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) { l.Logf(ErrorLevel, format, args...) }

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...any) { l.Logf(CriticalLevel, format, args...) }

// Child returns a logger for a sub-namespace. Its configuration is a copy
// of this logger's with opts applied; invalid overrides are reported and
// ignored. The child starts with the same plugin instances (unless opts
// replace them) but keeps its own history and lifecycle. Inherited plugins
// stay owned by the ancestor that registered them: the child neither
// initializes nor shuts them down. Plugins that the overrides add are
// owned by the child.
//
// A child of a logger that is shutting down starts shutting down too (it
// still logs but rejects Use); a child of a terminated logger starts
// terminated and initializes nothing.
func (l *Logger) Child(namespace string, opts ...Option) *Logger {
	parentCfg := l.Config()
	cfg := parentCfg.With(opts...)
	if err := cfg.Validate(); err != nil {
		l.report(fmt.Errorf("child %q: %w", namespace, err))
		cfg = parentCfg
	}

	ns := namespace
	if l.namespace != "" {
		ns = l.namespace + ":" + namespace
	}

	var shared *handler.Console
	if sameWriter(cfg.Output, l.cfg.Output) {
		shared = l.console
	}
	child := newLogger(cfg, ns, shared)

	switch l.state.Load() {
	case stateTerminated:
		child.state.Store(stateTerminated)
		child.stopping = true
		close(child.done)
		return child
	case stateShuttingDown:
		child.state.Store(stateShuttingDown)
	}

	for _, p := range child.plugins {
		if containsPlugin(parentCfg.Plugins, p) {
			child.inherit = append(child.inherit, p)
			continue
		}
		child.initialize(p)
	}
	return child
}

// sameWriter reports whether a and b are the same stream. Writers whose
// dynamic type is not comparable are treated as different.
func sameWriter(a, b io.Writer) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func containsPlugin(list []Plugin, p Plugin) bool {
	tp := reflect.TypeOf(p)
	if !tp.Comparable() {
		return false
	}
	for _, q := range list {
		if reflect.TypeOf(q) == tp && q == p {
			return true
		}
	}
	return false
}

// Use registers a plugin and runs its initialize hook with the current
// configuration. Entries logged before Use returns are not observed by the
// plugin. Use fails with ErrShuttingDown once Shutdown has been called.
func (l *Logger) Use(p Plugin) error {
	if p == nil {
		return fmt.Errorf("%w: plugin is nil", ErrInvalidConfig)
	}
	if l.state.Load() != stateActive {
		return ErrShuttingDown
	}

	l.initialize(p)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Load() != stateActive {
		return ErrShuttingDown
	}
	l.plugins = append(slices.Clip(l.plugins), p)
	return nil
}

func (l *Logger) initialize(p Plugin) {
	i, ok := p.(Initializer)
	if !ok {
		return
	}
	cfg := l.Config()
	if err := callHook(p, HookInitialize, func() error { return i.Initialize(cfg) }); err != nil {
		l.report(err)
	}
}

// Plugins returns the registered plugins in notification order.
func (l *Logger) Plugins() []Plugin {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.plugins)
}

// History returns a snapshot of the retained entries, oldest first. With
// filters, only entries matching all of them are returned. A logger with
// history disabled returns an empty slice.
func (l *Logger) History(filters ...HistoryFilter) []core.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.history == nil {
		return []core.Entry{}
	}
	return l.history.snapshot(filters)
}

// HistoryLen returns the number of retained entries.
func (l *Logger) HistoryLen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.history == nil {
		return 0
	}
	return l.history.len()
}

// ClearHistory discards all retained entries
func (l *Logger) ClearHistory() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.history != nil {
		l.history.clear()
	}
}

// ExportHistory encodes the matching history entries as an indented JSON
// export record. core.ParseExport reads it back.
func (l *Logger) ExportHistory(filters ...HistoryFilter) ([]byte, error) {
	export := core.Export{
		ExportTime: xclock.Now(),
		Namespace:  l.namespace,
		Logs:       l.History(filters...),
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	return data, nil
}

// Shutdown stops accepting plugins, runs the shutdown hook of every plugin
// this logger owns (see Child) concurrently and waits for all of them. A failing hook does not affect
// the others; all failures are returned together (see multierr.Errors).
// If ctx ends first, a *ShutdownTimeoutError naming the pending plugins is
// included. Either way the logger is terminated when Shutdown returns and
// later log calls do nothing. Calling Shutdown again waits for the first
// call to finish and returns nil.
func (l *Logger) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	if l.stopping {
		l.mu.Unlock()
		select {
		case <-l.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	l.stopping = true
	l.state.Store(stateShuttingDown)
	plugins := make([]Plugin, 0, len(l.plugins))
	for _, p := range l.plugins {
		if !containsPlugin(l.inherit, p) {
			plugins = append(plugins, p)
		}
	}
	l.mu.Unlock()

	defer func() {
		l.state.Store(stateTerminated)
		close(l.done)
	}()

	var (
		mu       sync.Mutex
		errs     = make([]error, len(plugins))
		finished = make([]bool, len(plugins))
		g        errgroup.Group
	)
	for i, p := range plugins {
		s, ok := p.(Shutdowner)
		if !ok {
			finished[i] = true
			continue
		}
		g.Go(func() error {
			err := callHook(p, HookShutdown, func() error { return s.Shutdown(ctx) })
			mu.Lock()
			errs[i] = err
			finished[i] = true
			mu.Unlock()
			return nil
		})
	}

	waited := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		return multierr.Combine(errs...)
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	timeout := &ShutdownTimeoutError{Err: ctx.Err()}
	for i, p := range plugins {
		if !finished[i] {
			timeout.Pending = append(timeout.Pending, p.Name())
		}
	}
	if len(timeout.Pending) == 0 {
		// Every hook returned while the context was ending.
		return multierr.Combine(errs...)
	}
	return multierr.Append(multierr.Combine(errs...), timeout)
}

// Done is closed when Shutdown has completed.
func (l *Logger) Done() <-chan struct{} { return l.done }
