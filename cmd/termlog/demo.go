package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/handler"
	"github.com/philipp01105/termlog/logger"
)

type demoOptions struct {
	export  string
	timeout time.Duration
}

func newDemoCmd(root *rootOptions) *cobra.Command {
	opts := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Log sample entries at every level",
		Long: `demo logs a short burst of sample traffic through a parent logger and
two namespaced children, optionally exports the history as JSON, and shuts
the logger down so every plugin flushes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.build(cmd)
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cmd.ErrOrStderr(), s, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.export, "export", "o", "", "write the history export to this file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "shutdown timeout")
	return cmd
}

func runDemo(ctx context.Context, stderr io.Writer, s *session, opts *demoOptions) error {
	err := logDemo(ctx, stderr, s, opts)

	sctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()
	err = multierr.Append(err, s.log.Shutdown(sctx))

	printSinkStats(stderr, s)
	return err
}

func logDemo(ctx context.Context, stderr io.Writer, s *session, opts *demoOptions) error {
	l := s.log
	l.Debug("resolving configuration", logger.String("theme", l.Config().Theme.Name()))
	l.Info("server starting", logger.Int("port", 8080), logger.Bool("tls", false))

	api := l.Child("api")
	api.Success("request handled",
		logger.String("method", "GET"),
		logger.String("path", "/users"),
		logger.Int("status", 200),
		logger.String("latency", formatter.Duration(1530*time.Millisecond)),
	)

	db := api.Child("db")
	db.Warning("connection pool nearly exhausted",
		logger.Int("open", 95),
		logger.String("usage", formatter.Percentage(0.95)),
	)
	l.Error("upload rejected",
		logger.String("size", formatter.Bytes(52_428_800)),
		logger.String("limit", formatter.Bytes(10_485_760)),
		logger.Err(errors.New("payload too large")),
	)
	l.Critical("disk failure", logger.String("device", "/dev/sda1"))

	if err := ctx.Err(); err != nil {
		return err
	}

	if opts.export != "" {
		data, err := l.ExportHistory()
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.export, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(stderr, "exported %s entries to %s\n", formatter.Number(int64(l.HistoryLen())), opts.export)
	}

	if s.registry != nil {
		return printMetrics(stderr, s)
	}
	return nil
}

// printSinkStats reports per-file queue statistics after shutdown.
func printSinkStats(w io.Writer, s *session) {
	names := make([]string, 0, len(s.sinks))
	for name := range s.sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sp, ok := s.sinks[name].(handler.StatsProvider)
		if !ok {
			continue
		}
		snap := sp.Stats()
		fmt.Fprintf(w, "%s: processed=%d dropped=%d blocked=%d\n", name, snap.ProcessedTotal, snap.Dropped(), snap.BlockedTotal)
	}
}

// printMetrics writes one "level namespace count" line per series.
func printMetrics(w io.Writer, s *session) error {
	mfs, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var out []string
	for _, mf := range mfs {
		if mf.GetType().String() != "COUNTER" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			ns := labels["namespace"]
			if ns == "" {
				ns = "-"
			}
			out = append(out, fmt.Sprintf("%-8s %-8s %v", labels["level"], ns, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(out)
	for _, line := range out {
		fmt.Fprintln(w, line)
	}
	return nil
}
