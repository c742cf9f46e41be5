package promplugin

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/logger"
)

func newLogger(t *testing.T, p *Plugin, opts ...logger.Option) *logger.Logger {
	t.Helper()
	base := []logger.Option{
		logger.WithOutput(&bytes.Buffer{}),
		logger.WithColorMode(capability.Disabled),
		logger.WithPlugins(p),
	}
	l, err := logger.New(logger.DefaultConfig().With(append(base, opts...)...))
	require.NoError(t, err)
	return l
}

func TestPlugin_CountsByLevelAndNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(Options{Registerer: reg})
	l := newLogger(t, p)

	l.Debug("filtered")
	l.Info("a")
	l.Info("b")
	l.Child("db").Error("c")

	assert.Equal(t, 2, testutil.CollectAndCount(p.Entries()))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.Entries().WithLabelValues("info", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Entries().WithLabelValues("error", "db")))
}

func TestPlugin_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(Options{Registerer: reg, Namespace: "app"})
	l := newLogger(t, p, logger.WithLevel(logger.WarningLevel))
	l.Warning("w")

	expected := `
# HELP app_log_entries_total Total number of log entries accepted, by level and namespace.
# TYPE app_log_entries_total counter
app_log_entries_total{level="warning",namespace=""} 1
# HELP app_log_min_level Configured minimum log level (0=debug ... 5=critical).
# TYPE app_log_min_level gauge
app_log_min_level 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestPlugin_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(Options{Registerer: reg})
	second := New(Options{Registerer: reg})

	l1 := newLogger(t, first)
	l2 := newLogger(t, second)
	l1.Info("x")
	l2.Info("y")

	assert.Same(t, first.Entries(), second.Entries())
	assert.Equal(t, 2.0, testutil.ToFloat64(first.Entries().WithLabelValues("info", "")))
}

func TestPlugin_ShutdownUnregisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(Options{Registerer: reg})
	l := newLogger(t, p)
	l.Info("x")

	require.NoError(t, l.Shutdown(context.Background()))
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, mfs)
}
