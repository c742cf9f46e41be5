package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/handler"
)

// Config holds configuration for the file handler
type Config struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: JSONFormatter, one entry per line)
	Formatter formatter.Formatter
	// MaxSizeMB is the size in megabytes before the file is rotated (default: 100)
	MaxSizeMB int
	// MaxBackups is the maximum number of rotated files to retain (0 = keep all)
	MaxBackups int
	// MaxAgeDays is the number of days to retain rotated files (0 = no age limit)
	MaxAgeDays int
	// Compress gzips rotated files
	Compress bool
	// LocalTime names rotated files with local instead of UTC time
	LocalTime bool
	// Async enables asynchronous writes through a bounded queue
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: handler.DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for the Block overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
}

// New creates a file handler writing to a lumberjack-rotated file.
// With Async set the returned handler is a *handler.Async wrapping the
// file sink; otherwise it is a *File.
func New(cfg Config) (handler.Handler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filename is required")
	}
	applyDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0o755); err != nil {
		return nil, err
	}

	f := newFile(cfg)
	if !cfg.Async {
		return f, nil
	}
	return handler.NewAsync(f, handler.AsyncConfig{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}), nil
}

func newLumberjack(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  cfg.LocalTime,
	}
}
