package logger

import (
	"context"
	"fmt"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/handler"
)

// Plugin is an observer registered with a Logger. Only identification is
// required; lifecycle hooks are picked up by implementing Initializer,
// Observer or Shutdowner. Plugins are compared by nothing but their
// position in the list, so duplicate names are allowed.
type Plugin interface {
	Name() string
	Version() string
}

// Initializer is called once when the plugin is registered, with the
// configuration of the registering logger.
type Initializer interface {
	Initialize(cfg Config) error
}

// Observer is called for every accepted entry, in registration order and
// on the logging goroutine. Plugins doing slow work should hand the entry
// to their own goroutine and flush it in Shutdown.
type Observer interface {
	Observe(entry core.Entry) error
}

// Shutdowner is called once by Logger.Shutdown. Hooks run concurrently;
// the context carries the caller's deadline.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Hooks holds optional closures for NewPlugin. Nil hooks are skipped.
type Hooks struct {
	Initialize func(cfg Config) error
	Observe    func(entry core.Entry) error
	Shutdown   func(ctx context.Context) error
}

// NewPlugin creates a plugin from closures.
func NewPlugin(name, version string, hooks Hooks) Plugin {
	return &funcPlugin{name: name, version: version, hooks: hooks}
}

type funcPlugin struct {
	name    string
	version string
	hooks   Hooks
}

func (p *funcPlugin) Name() string    { return p.name }
func (p *funcPlugin) Version() string { return p.version }

func (p *funcPlugin) Initialize(cfg Config) error {
	if p.hooks.Initialize == nil {
		return nil
	}
	return p.hooks.Initialize(cfg)
}

func (p *funcPlugin) Observe(entry core.Entry) error {
	if p.hooks.Observe == nil {
		return nil
	}
	return p.hooks.Observe(entry)
}

func (p *funcPlugin) Shutdown(ctx context.Context) error {
	if p.hooks.Shutdown == nil {
		return nil
	}
	return p.hooks.Shutdown(ctx)
}

// HandlerPlugin exposes a handler as a plugin: every observed entry is
// passed to h, and Shutdown closes h, which flushes any queued writes.
func HandlerPlugin(name, version string, h handler.Handler) Plugin {
	return &handlerPlugin{name: name, version: version, h: h}
}

type handlerPlugin struct {
	name    string
	version string
	h       handler.Handler
}

func (p *handlerPlugin) Name() string    { return p.name }
func (p *handlerPlugin) Version() string { return p.version }

func (p *handlerPlugin) Observe(entry core.Entry) error {
	return p.h.Handle(entry)
}

// Handler returns the wrapped handler.
func (p *handlerPlugin) Handler() handler.Handler { return p.h }

func (p *handlerPlugin) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- p.h.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// callHook runs fn and converts a panic into an error.
func callHook(p Plugin, hook Hook, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PluginError{Plugin: p.Name(), Version: p.Version(), Hook: hook, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if hookErr := fn(); hookErr != nil {
		return &PluginError{Plugin: p.Name(), Version: p.Version(), Hook: hook, Err: hookErr}
	}
	return nil
}
