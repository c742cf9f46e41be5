package logger

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want Level
	}{
		{slog.LevelDebug, DebugLevel},
		{slog.LevelInfo, InfoLevel},
		{slog.LevelWarn, WarningLevel},
		{slog.LevelError, ErrorLevel},
		{slog.LevelError + 4, CriticalLevel},
		{slog.LevelInfo + 2, InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slogLevelToCore(tt.in), tt.in.String())
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	l, buf := newTestLogger(t)
	sl := slog.New(l.SlogHandler())

	sl.Debug("filtered")
	sl.Info("request", "path", "/users", "status", 200)
	sl.Log(t.Context(), slog.LevelError+4, "meltdown")

	h := l.History()
	require.Len(t, h, 2)
	assert.Equal(t, InfoLevel, h[0].Level())
	assert.Equal(t, "request", h[0].Message())
	assert.Equal(t, []string{"path", "status"}, h[0].Metadata().Keys())
	status, _ := h[0].Metadata().Get("status")
	assert.Equal(t, int64(200), status)
	assert.Equal(t, CriticalLevel, h[1].Level())
	assert.Len(t, lines(buf), 1+4+1)
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	l, _ := newTestLogger(t)
	sl := slog.New(l.SlogHandler()).
		With("service", "api").
		WithGroup("req").
		With("id", "r-1")

	sl.Info("handled",
		slog.Group("user", slog.String("name", "ann"), slog.Bool("admin", false)),
		slog.Duration("took", 1500*time.Millisecond),
		slog.Float64("ratio", 0.5),
	)

	h := l.History()
	require.Len(t, h, 1)
	md := h[0].Metadata()
	assert.Equal(t, []string{"service", "req.id", "req.user.name", "req.user.admin", "req.took", "req.ratio"}, md.Keys())
	took, _ := md.Get("req.took")
	assert.Equal(t, "1.5s", took)
}

func TestSlogHandler_Enabled(t *testing.T) {
	l, _ := newTestLogger(t, WithLevel(WarningLevel))
	h := l.SlogHandler()

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
}

func TestSlogHandler_Namespace(t *testing.T) {
	l, _ := newTestLogger(t)
	child := l.Child("jobs")
	slog.New(child.SlogHandler()).Info("tick")

	h := child.History()
	require.Len(t, h, 1)
	assert.Equal(t, "[jobs] tick", h[0].Message())
	assert.Equal(t, "jobs", h[0].Namespace())
}

func TestSlogHandler_UsesRecordTime(t *testing.T) {
	l, _ := newTestLogger(t)
	at := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	r := slog.NewRecord(at, slog.LevelInfo, "old", 0)
	require.NoError(t, l.SlogHandler().Handle(t.Context(), r))

	h := l.History()
	require.Len(t, h, 1)
	assert.True(t, at.Equal(h[0].Time()))
}
