package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "trace", want: LevelTrace},
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestLevelFilterSplitsOutput(t *testing.T) {
	var low, high bytes.Buffer
	logger := slog.New(MultiHandler{hs: []slog.Handler{
		LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: newHandler(&low, "text", LevelTrace)},
		LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: newHandler(&high, "text", slog.LevelError)},
	}})

	logger.Log(context.Background(), LevelTrace, "tracing")
	logger.Info("hello", "k", "v")
	logger.Error("broken")

	assert.Contains(t, low.String(), "level=TRACE msg=tracing")
	assert.Contains(t, low.String(), "msg=hello k=v")
	assert.NotContains(t, low.String(), "broken")
	assert.Contains(t, high.String(), "level=ERROR msg=broken")
	assert.NotContains(t, high.String(), "hello")
}

func TestMultiHandlerWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(MultiHandler{hs: []slog.Handler{
		newHandler(&a, "text", slog.LevelInfo),
		newHandler(&b, "json", slog.LevelDebug),
	}}).With("namespace", "svc.protobuf").WithGroup("stats")

	logger.Debug("only json", "files", 1)

	assert.Empty(t, a.String())
	var rec map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &rec))
	assert.Equal(t, "svc.protobuf", rec["namespace"])
	assert.Equal(t, map[string]any{"files": float64(1)}, rec["stats"])
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protosynth.log")
	logger, closers, err := SetupLogger("debug", "text", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("written to file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "msg=\"written to file\""))
}

func TestSetupLoggerRejectsLevel(t *testing.T) {
	_, _, err := SetupLogger("chatty", "text", "")
	assert.Error(t, err)
}
