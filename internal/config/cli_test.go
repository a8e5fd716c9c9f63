package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI, configPaths ...string) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli,
		kong.Name("protosynth"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Configuration(kong.JSON, configPaths...),
	)
	require.NoError(t, err)
	return parser
}

func TestGenerateDefaults(t *testing.T) {
	t.Setenv("PROTOSYNTH_OUTPUT", "")

	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{"generate", "-i", "models/**/*.yaml", "-i", "extra.json", "-o", "out"})
	require.NoError(t, err)

	assert.Equal(t, "generate", ctx.Command())
	assert.Equal(t, []string{"models/**/*.yaml", "extra.json"}, cli.Generate.Input)
	assert.Equal(t, "Protos/DataService/Models/", cli.Generate.ImportRoot)
	assert.Equal(t, "csharp_namespace", cli.Generate.LanguageOption)
	assert.Equal(t, "lexical", cli.Generate.EnumOrder)
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, "text", cli.Log.Format)
}

func TestGenerateFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protosynth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "output": "from-config",
  "import_root": "protos/",
  "enum_order": "numeric",
  "log": {"level": "debug"}
}`), 0o644))

	var cli CLI
	_, err := newParser(t, &cli, path).Parse([]string{"generate", "-i", "a.yaml", "--enum-order", "lexical"})
	require.NoError(t, err)

	assert.Equal(t, "from-config", cli.Generate.Output)
	assert.Equal(t, "protos/", cli.Generate.ImportRoot)
	assert.Equal(t, "lexical", cli.Generate.EnumOrder, "flags override the file")
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestGenerateRejectsEnumOrder(t *testing.T) {
	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{"generate", "-i", "a.yaml", "-o", "out", "--enum-order", "random"})
	assert.Error(t, err)
}
