// Package proto renders a schema.Model into proto3 files, one per namespace.
//
// Rendering runs in three phases over the whole model: enums, then messages,
// then services. Each phase appends its output for a namespace to that
// namespace's file, so a file holds, in order, the header written by the
// first phase that touched the namespace followed by each phase's
// declarations.
package proto

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/protosynth/internal/codegen/common"
	"github.com/Alia5/protosynth/internal/codegen/schema"
	"github.com/Alia5/protosynth/internal/codegen/textgen"
)

const (
	DefaultImportRoot     = "Protos/DataService/Models/"
	DefaultLanguageOption = "csharp_namespace"
)

// ErrNoHeader is returned when content for a namespace is about to be
// written without the namespace having received a header.
var ErrNoHeader = errors.New("namespace has no header")

// EnumOrder selects how enum entries are ordered after the zero entry.
type EnumOrder string

const (
	// EnumOrderLexical compares values as strings ("10" sorts before "2").
	// This matches previously generated schemas.
	EnumOrderLexical EnumOrder = "lexical"
	// EnumOrderNumeric compares values as integers. Values that do not parse
	// sort after all numeric values, as strings.
	EnumOrderNumeric EnumOrder = "numeric"
)

// Options configures Generate.
type Options struct {
	// Directory the .proto files are appended to. Must exist.
	OutputDir string
	// Prefix of every import path.
	ImportRoot string
	// Name of the file option carrying the title-cased namespace.
	LanguageOption string
	EnumOrder      EnumOrder
}

// WithDefaults replaces unset fields with their defaults.
func (o Options) WithDefaults() Options {
	if o.ImportRoot == "" {
		o.ImportRoot = DefaultImportRoot
	}
	if o.LanguageOption == "" {
		o.LanguageOption = DefaultLanguageOption
	}
	if o.EnumOrder == "" {
		o.EnumOrder = EnumOrderLexical
	}
	return o
}

// Stats counts what a Generate call emitted.
type Stats struct {
	Files    int
	Enums    int
	Messages int
	Skipped  int
	Services int
	Rpcs     int
}

type generator struct {
	opts   Options
	logger *slog.Logger
	model  *schema.Model
	out    *textgen.Generator

	visited map[string]struct{}
	files   map[string]struct{}
	stats   Stats
}

// Generate renders model into opts.OutputDir. Existing files are appended to.
func Generate(logger *slog.Logger, opts Options, model *schema.Model) (Stats, error) {
	g := &generator{
		opts:    opts.WithDefaults(),
		logger:  logger,
		model:   model,
		out:     textgen.NewGenerator(),
		visited: make(map[string]struct{}),
		files:   make(map[string]struct{}),
	}

	if err := g.generateEnums(); err != nil {
		return g.stats, fmt.Errorf("generate enums: %w", err)
	}
	if err := g.generateMessages(); err != nil {
		return g.stats, fmt.Errorf("generate messages: %w", err)
	}
	if err := g.generateServices(); err != nil {
		return g.stats, fmt.Errorf("generate services: %w", err)
	}

	g.stats.Files = len(g.files)
	logger.Info("Generated proto files",
		"dir", g.opts.OutputDir,
		"files", g.stats.Files,
		"enums", g.stats.Enums,
		"messages", g.stats.Messages,
		"skipped", g.stats.Skipped,
		"services", g.stats.Services)
	return g.stats, nil
}

func (g *generator) ensureHeader(ns string) {
	if _, ok := g.visited[ns]; ok {
		return
	}
	g.visited[ns] = struct{}{}

	g.out.PushBlock(textgen.KindHeader, ns)
	g.out.WriteLine(`syntax = "proto3";`)
	g.out.NewLine()
	g.out.WriteLine(`option %s = "%s";`, g.opts.LanguageOption, common.TitleCase(schema.TrimSuffix(ns)))
	g.out.NewLine()
	g.out.WriteLine("package %s;", ns)
	g.out.NewLine()
	g.out.PopBlock(textgen.NewLineNever)
}

// flush appends everything rendered so far to the namespace's file and
// clears the block tree.
func (g *generator) flush(ns string) error {
	if _, ok := g.visited[ns]; !ok {
		return fmt.Errorf("%w: %s", ErrNoHeader, ns)
	}

	enums := len(g.out.FindBlocks(textgen.KindEnum))
	messages := len(g.out.FindBlocks(textgen.KindMessage))
	services := len(g.out.FindBlocks(textgen.KindService))
	rpcs := len(g.out.FindBlocks(textgen.KindRpc))

	name := schema.FileName(ns)
	path := filepath.Join(g.opts.OutputDir, name)
	text := g.out.Generate()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	g.out.Reset()

	g.files[name] = struct{}{}
	g.stats.Enums += enums
	g.stats.Messages += messages
	g.stats.Services += services
	g.stats.Rpcs += rpcs

	g.logger.Debug("Appended proto output",
		"namespace", ns,
		"path", path,
		"bytes", len(text),
		"enums", enums,
		"messages", messages,
		"rpcs", rpcs)
	return nil
}
