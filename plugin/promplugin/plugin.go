// Package promplugin counts accepted log entries in Prometheus, labelled by
// level and namespace.
package promplugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/logger"
)

const (
	Name    = "prometheus"
	Version = "1.0.0"
)

// Options configure the plugin.
type Options struct {
	// Registerer receives the collectors (default: prometheus.DefaultRegisterer)
	Registerer prometheus.Registerer
	// Namespace prefixes metric names (default: "termlog")
	Namespace string
	// ConstLabels are attached to every series.
	ConstLabels prometheus.Labels
}

// Plugin exposes:
//   - <ns>_log_entries_total{level,namespace}
//   - <ns>_log_min_level, the configured minimum level as a number
type Plugin struct {
	reg      prometheus.Registerer
	entries  *prometheus.CounterVec
	minLevel prometheus.Gauge
}

var (
	_ logger.Initializer = (*Plugin)(nil)
	_ logger.Observer    = (*Plugin)(nil)
	_ logger.Shutdowner  = (*Plugin)(nil)
)

// New creates the plugin. Collectors are registered by Initialize.
func New(opts Options) *Plugin {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Namespace == "" {
		opts.Namespace = "termlog"
	}
	return &Plugin{
		reg: opts.Registerer,
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Name:        "log_entries_total",
			Help:        "Total number of log entries accepted, by level and namespace.",
			ConstLabels: opts.ConstLabels,
		}, []string{"level", "namespace"}),
		minLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Name:        "log_min_level",
			Help:        "Configured minimum log level (0=debug ... 5=critical).",
			ConstLabels: opts.ConstLabels,
		}),
	}
}

func (p *Plugin) Name() string    { return Name }
func (p *Plugin) Version() string { return Version }

// Initialize registers the collectors. A collector already registered by
// an identical plugin is reused, so the same registry can back a parent and
// its children.
func (p *Plugin) Initialize(cfg logger.Config) error {
	var err error
	if p.entries, err = register(p.reg, p.entries); err != nil {
		return err
	}
	if p.minLevel, err = register(p.reg, p.minLevel); err != nil {
		return err
	}
	p.minLevel.Set(float64(cfg.LogLevel))
	return nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

// Observe increments the entry counter.
func (p *Plugin) Observe(entry core.Entry) error {
	p.entries.WithLabelValues(entry.Level().String(), entry.Namespace()).Inc()
	return nil
}

// Shutdown unregisters the collectors.
func (p *Plugin) Shutdown(context.Context) error {
	p.reg.Unregister(p.entries)
	p.reg.Unregister(p.minLevel)
	return nil
}

// Entries returns the entry counter vector.
func (p *Plugin) Entries() *prometheus.CounterVec { return p.entries }
