package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/termlog/capability"
	"github.com/philipp01105/termlog/handler"
	"github.com/philipp01105/termlog/handler/filehandler"
	"github.com/philipp01105/termlog/logger"
	"github.com/philipp01105/termlog/plugin/promplugin"
	"github.com/philipp01105/termlog/plugin/zapplugin"
	"github.com/philipp01105/termlog/theme"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	level      string
	themeName  string
	color      string
	emoji      string
	unicode    string
	files      []string
	zap        bool
	metrics    bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "termlog",
		Short: "Structured, themeable console logging",
		Long: `termlog renders leveled log entries with timestamps, symbols and
colorized JSON metadata, keeps a bounded history that can be exported, and
forwards entries to plugins such as a rotating file, zap or Prometheus.`,
		Version:      version,
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate(`{{printf "termlog version %s\n" .Version}}`)

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.StringVarP(&opts.level, "level", "l", "", "minimum level (debug, info, success, warning, error, critical)")
	f.StringVar(&opts.themeName, "theme", "", "theme name (see 'termlog themes')")
	f.StringVar(&opts.color, "color", "", "color mode (auto, enabled, disabled)")
	f.StringVar(&opts.emoji, "emoji", "", "emoji mode (auto, enabled, disabled)")
	f.StringVar(&opts.unicode, "unicode", "", "unicode mode (auto, enabled, disabled)")
	f.StringSliceVar(&opts.files, "file", nil, "also write JSON lines to these rotating files (repeatable)")
	f.BoolVar(&opts.zap, "zap", false, "mirror entries to a zap production logger on stderr")
	f.BoolVar(&opts.metrics, "metrics", false, "count entries in Prometheus and print the totals on exit")

	cmd.AddCommand(newDemoCmd(opts), newThemesCmd())
	return cmd
}

// session is a built logger plus the collaborators the command reports on.
type session struct {
	log      *logger.Logger
	registry *prometheus.Registry
	metrics  *promplugin.Plugin
	sinks    map[string]handler.Handler
}

// build assembles the logger: config file first, then flags, then plugins.
func (o *rootOptions) build(cmd *cobra.Command) (*session, error) {
	b := logger.NewBuilder()
	if o.configPath != "" {
		var err error
		if b, err = logger.LoadConfigFile(o.configPath); err != nil {
			return nil, err
		}
	}
	b.WithOutput(cmd.OutOrStdout())

	if o.level != "" {
		lvl, err := logger.ParseLevel(o.level)
		if err != nil {
			return nil, err
		}
		b.WithLevel(lvl)
	}
	if o.themeName != "" {
		th, err := theme.ByName(o.themeName)
		if err != nil {
			return nil, err
		}
		b.WithTheme(th)
	}
	modes := []struct {
		flag  string
		value string
		apply func(capability.Mode) *logger.Builder
	}{
		{"color", o.color, b.WithColorMode},
		{"emoji", o.emoji, b.WithEmojiMode},
		{"unicode", o.unicode, b.WithUnicodeMode},
	}
	for _, m := range modes {
		if m.value == "" {
			continue
		}
		mode, err := capability.ParseMode(m.value)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", m.flag, err)
		}
		m.apply(mode)
	}

	s := &session{sinks: map[string]handler.Handler{}}
	if len(o.files) > 0 {
		files := make([]handler.Handler, 0, len(o.files))
		for _, name := range o.files {
			h, err := filehandler.New(filehandler.Config{Filename: name, Async: true})
			if err != nil {
				return nil, multierr.Append(fmt.Errorf("open log file: %w", err), handler.NewMulti(files...).Close())
			}
			files = append(files, h)
			s.sinks[name] = h
		}
		var h handler.Handler = handler.NewMulti(files...)
		if len(files) == 1 {
			h = files[0]
		}
		b.WithPlugin(logger.HandlerPlugin("file", "1.0.0", h))
	}
	if o.zap {
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("create zap logger: %w", err)
		}
		b.WithPlugin(zapplugin.New(zl, zapplugin.Options{}))
	}
	if o.metrics {
		s.registry = prometheus.NewRegistry()
		s.metrics = promplugin.New(promplugin.Options{Registerer: s.registry})
		b.WithPlugin(s.metrics)
	}

	l, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.log = l
	return s, nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range theme.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
