package filehandler

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/core"
	"github.com/philipp01105/termlog/formatter"
	"github.com/philipp01105/termlog/handler"
)

func readEntries(t *testing.T, filename string) []core.Entry {
	t.Helper()
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	var out []core.Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e core.Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestNew_RequiresFilename(t *testing.T) {
	_, err := New(Config{})
	assert.EqualError(t, err, "filename is required")
}

func TestFile_WritesJSONLines(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "app.log")
	h, err := New(Config{Filename: filename})
	require.NoError(t, err)
	require.IsType(t, &File{}, h)

	ts := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, h.Handle(core.NewEntry(ts, core.InfoLevel, "[db] connected", "db",
		core.Field{Key: "host", Value: "localhost"})))
	require.NoError(t, h.Handle(core.NewEntry(ts, core.ErrorLevel, "failed", "")))
	require.NoError(t, h.Close())

	entries := readEntries(t, filename)
	require.Len(t, entries, 2)
	assert.Equal(t, "[db] connected", entries[0].Message())
	assert.Equal(t, "db", entries[0].Namespace())
	host, _ := entries[0].Metadata().Get("host")
	assert.Equal(t, "localhost", host)
	assert.Equal(t, core.ErrorLevel, entries[1].Level())
	assert.True(t, ts.Equal(entries[1].Time()))
}

func TestFile_CustomFormatter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	h, err := New(Config{
		Filename:  filename,
		Formatter: formatter.NewConsoleFormatter(formatter.ConsoleConfig{}),
	})
	require.NoError(t, err)

	ts := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, h.Handle(core.NewEntry(ts, core.WarningLevel, "low disk", "")))
	require.NoError(t, h.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "[08:00:00] low disk\n", string(data))
}

func TestFile_HandleAfterClose(t *testing.T) {
	h, err := New(Config{Filename: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.ErrorIs(t, h.Handle(core.NewEntry(time.Now(), core.InfoLevel, "x", "")), ErrClosed)
}

func TestFile_Rotate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")
	h, err := New(Config{Filename: filename})
	require.NoError(t, err)
	f := h.(*File)

	require.NoError(t, f.Handle(core.NewEntry(time.Now(), core.InfoLevel, "before", "")))
	require.NoError(t, f.Rotate())
	require.NoError(t, f.Handle(core.NewEntry(time.Now(), core.InfoLevel, "after", "")))
	require.NoError(t, f.Close())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	entries := readEntries(t, filename)
	require.Len(t, entries, 1)
	assert.Equal(t, "after", entries[0].Message())
	assert.Equal(t, uint64(2), f.Stats().ProcessedTotal)
}

func TestFile_AsyncDrainsOnClose(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	h, err := New(Config{Filename: filename, Async: true, BufferSize: 64})
	require.NoError(t, err)
	require.IsType(t, &handler.Async{}, h)

	for i := 0; i < 50; i++ {
		require.NoError(t, h.Handle(core.NewEntry(time.Now(), core.InfoLevel, "queued", "")))
	}
	require.NoError(t, h.Close())

	assert.Len(t, readEntries(t, filename), 50)
}
