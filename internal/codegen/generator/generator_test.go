package generator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/protosynth/internal/codegen/generator/proto"
	"github.com/Alia5/protosynth/internal/codegen/schema"
)

func pingModel(t *testing.T) *schema.Model {
	t.Helper()
	m := schema.NewModel()
	require.True(t, m.AddRpc("svc.protobuf", schema.Message{Name: "Ping"}))
	return m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		outDir  func(t *testing.T) string
		clean   bool
		wantErr string
		check   func(t *testing.T, out string, stats proto.Stats)
	}{
		{
			name:    "missing output directory option",
			outDir:  func(t *testing.T) string { return "" },
			wantErr: "no output directory given",
		},
		{
			name: "output directory is created",
			outDir: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nested", "out")
			},
			check: func(t *testing.T, out string, stats proto.Stats) {
				assert.Equal(t, 1, stats.Rpcs)
				assert.FileExists(t, filepath.Join(out, "svc.proto"))
			},
		},
		{
			name: "previous output is appended to without clean",
			outDir: func(t *testing.T) string {
				out := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(out, "svc.proto"), []byte("// stale\n"), 0o644))
				return out
			},
			check: func(t *testing.T, out string, _ proto.Stats) {
				data, err := os.ReadFile(filepath.Join(out, "svc.proto"))
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(string(data), "// stale\n"))
			},
		},
		{
			name: "clean removes previous output",
			outDir: func(t *testing.T) string {
				out := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(out, "svc.proto"), []byte("// stale\n"), 0o644))
				return out
			},
			clean: true,
			check: func(t *testing.T, out string, _ proto.Stats) {
				data, err := os.ReadFile(filepath.Join(out, "svc.proto"))
				require.NoError(t, err)
				assert.NotContains(t, string(data), "// stale")
				assert.Equal(t, 1, strings.Count(string(data), "service Svc {"))
			},
		},
		{
			name: "clean fails when output cannot be removed",
			outDir: func(t *testing.T) string {
				out := t.TempDir()
				blocked := filepath.Join(out, "svc.proto")
				require.NoError(t, os.MkdirAll(blocked, 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(blocked, "keep"), nil, 0o644))
				return out
			},
			clean:   true,
			wantErr: "failed to remove",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.outDir(t)
			g := New(Options{OutputDir: out, Clean: tt.clean}, discardLogger())

			stats, err := g.Generate(pingModel(t))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, out, stats)
		})
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "svc.yaml"), []byte(`namespaces:
  - name: svc.protobuf
    rpcs:
      - name: Ping
`), 0o644))

	g := New(Options{ResultType: "svc.protobuf.Status"}, discardLogger())
	m, err := g.LoadModel(context.Background(), []string{filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)
	assert.True(t, m.HasRpc("Ping"))
	assert.Equal(t, "svc.protobuf.Status", m.ResultType())

	_, err = g.LoadModel(context.Background(), []string{filepath.Join(dir, "*.json")})
	assert.Error(t, err)
}
