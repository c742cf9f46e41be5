// Package zapplugin forwards accepted log entries into a zap.Logger so the
// console output can be mirrored into an existing zap pipeline.
package zapplugin

import (
	"context"
	"errors"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/logger"
)

const (
	// Name is the plugin name reported in PluginError.
	Name = "zap"
	// Version is the plugin version.
	Version = "1.0.0"
)

// Options configure the plugin.
type Options struct {
	// TimestampKey is the field carrying the entry time (default "ts").
	// Empty keeps zap's own clock in charge of the encoder time.
	TimestampKey string
	// NamespaceKey is the field carrying the entry namespace (default "namespace").
	NamespaceKey string
	// LevelKey carries the original level name for success and critical,
	// which have no zap equivalent (default "termlog_level").
	LevelKey string
}

// Plugin forwards observed entries to a zap.Logger.
type Plugin struct {
	l    *zap.Logger
	opts Options
}

var (
	_ logger.Observer   = (*Plugin)(nil)
	_ logger.Shutdowner = (*Plugin)(nil)
)

// New creates a plugin writing to l. A nil logger discards everything.
func New(l *zap.Logger, opts Options) *Plugin {
	if l == nil {
		l = zap.NewNop()
	}
	if opts.TimestampKey == "" {
		opts.TimestampKey = "ts"
	}
	if opts.NamespaceKey == "" {
		opts.NamespaceKey = "namespace"
	}
	if opts.LevelKey == "" {
		opts.LevelKey = "termlog_level"
	}
	return &Plugin{l: l, opts: opts}
}

func (p *Plugin) Name() string    { return Name }
func (p *Plugin) Version() string { return Version }

// Observe writes the entry through zap's Check fast path, so entries below
// the zap core's level cost nothing beyond the check.
func (p *Plugin) Observe(entry core.Entry) error {
	ce := p.l.Check(toZapLevel(entry.Level()), entry.Message())
	if ce == nil {
		return nil
	}

	md := entry.Metadata()
	fields := make([]zap.Field, 0, len(md)+3)
	fields = append(fields, zap.String(p.opts.TimestampKey, entry.Time().UTC().Format(time.RFC3339Nano)))
	if ns := entry.Namespace(); ns != "" {
		fields = append(fields, zap.String(p.opts.NamespaceKey, ns))
	}
	switch entry.Level() {
	case core.SuccessLevel, core.CriticalLevel:
		fields = append(fields, zap.String(p.opts.LevelKey, entry.Level().String()))
	}
	for _, f := range md {
		fields = append(fields, toZapField(f))
	}

	ce.Write(fields...)
	return nil
}

// Shutdown flushes the zap logger. Sync errors from terminals that do not
// support fsync are ignored.
func (p *Plugin) Shutdown(context.Context) error {
	err := p.l.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

// toZapLevel maps levels onto zap's. Critical becomes Error rather than
// DPanic or Fatal so forwarding never panics or exits.
func toZapLevel(l core.Level) zapcore.Level {
	switch l {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel, core.SuccessLevel:
		return zapcore.InfoLevel
	case core.WarningLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func toZapField(f core.Field) zap.Field {
	switch v := f.Value.(type) {
	case string:
		return zap.String(f.Key, v)
	case int:
		return zap.Int(f.Key, v)
	case int64:
		return zap.Int64(f.Key, v)
	case uint64:
		return zap.Uint64(f.Key, v)
	case float64:
		return zap.Float64(f.Key, v)
	case bool:
		return zap.Bool(f.Key, v)
	case time.Time:
		return zap.Time(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	case nil:
		return zap.Skip()
	default:
		return zap.Any(f.Key, v)
	}
}
