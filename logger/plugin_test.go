package logger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/handler/filehandler"
)

func TestNewPlugin(t *testing.T) {
	var (
		initLevel Level
		observed  []string
		stopped   bool
	)
	p := NewPlugin("closures", "2.0", Hooks{
		Initialize: func(cfg Config) error { initLevel = cfg.LogLevel; return nil },
		Observe:    func(e core.Entry) error { observed = append(observed, e.Message()); return nil },
		Shutdown:   func(context.Context) error { stopped = true; return nil },
	})
	assert.Equal(t, "closures", p.Name())
	assert.Equal(t, "2.0", p.Version())

	l, _ := newTestLogger(t, WithLevel(WarningLevel), WithPlugins(p))
	l.Warning("w")
	require.NoError(t, l.Shutdown(context.Background()))

	assert.Equal(t, WarningLevel, initLevel)
	assert.Equal(t, []string{"w"}, observed)
	assert.True(t, stopped)
}

func TestNewPlugin_NilHooks(t *testing.T) {
	p := NewPlugin("empty", "0", Hooks{})
	l, _ := newTestLogger(t, WithPlugins(p))
	l.Info("x")
	assert.NoError(t, l.Shutdown(context.Background()))
}

func TestHandlerPlugin_FlushesOnShutdown(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	h, err := filehandler.New(filehandler.Config{Filename: filename, Async: true})
	require.NoError(t, err)

	l, _ := newTestLogger(t, WithPlugins(HandlerPlugin("file", "1.0", h)))
	db := l.Child("db")
	l.Info("one")
	db.Warning("two", String("table", "users"))
	require.NoError(t, l.Shutdown(context.Background()))

	entries := readLogFile(t, filename)
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message())
	assert.Equal(t, "[db] two", entries[1].Message())
	assert.Equal(t, "db", entries[1].Namespace())
}

type blockingHandler struct{ release chan struct{} }

func (blockingHandler) Handle(core.Entry) error { return nil }
func (h blockingHandler) Close() error {
	<-h.release
	return errors.New("closed late")
}

func TestHandlerPlugin_ShutdownHonorsContext(t *testing.T) {
	h := blockingHandler{release: make(chan struct{})}
	defer close(h.release)
	p := HandlerPlugin("slow", "1.0", h).(Shutdowner)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Shutdown(ctx), context.DeadlineExceeded)
}

func TestPluginError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&PluginError{Plugin: "p", Version: "1", Hook: HookObserve, Err: cause})
	assert.Equal(t, "plugin p@1: observe: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	re := &RenderError{Err: cause}
	assert.Equal(t, "render: boom", re.Error())
	assert.ErrorIs(t, re, cause)

	te := &ShutdownTimeoutError{Pending: []string{"a", "b"}, Err: context.DeadlineExceeded}
	assert.Equal(t, "shutdown: context deadline exceeded; pending plugins: a, b", te.Error())
	assert.ErrorIs(t, te, context.DeadlineExceeded)
}
