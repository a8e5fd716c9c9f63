package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alia5/protosynth/internal/codegen/generator/proto"
	"github.com/Alia5/protosynth/internal/codegen/input"
	"github.com/Alia5/protosynth/internal/codegen/schema"
)

type Options struct {
	OutputDir      string
	ImportRoot     string
	LanguageOption string
	EnumOrder      proto.EnumOrder
	ResultType     string
	// Clean removes the files the model maps to before generating, so the
	// output does not end up appended to a previous run.
	Clean bool
	// Jobs bounds the number of input files decoded concurrently.
	Jobs int
}

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// LoadModel reads the model files matching patterns into a single model.
func (g *Generator) LoadModel(ctx context.Context, patterns []string) (*schema.Model, error) {
	g.logger.Info("Loading model", "patterns", patterns)

	model, err := input.Load(ctx, g.logger, patterns, g.opts.Jobs, schema.WithResultType(g.opts.ResultType))
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	var enums, messages, rpcs int
	for _, e := range model.Enums() {
		enums += len(e)
	}
	for _, m := range model.Messages() {
		messages += len(m)
	}
	for _, r := range model.Rpcs() {
		rpcs += len(r)
	}
	g.logger.Info("Loaded model",
		"namespaces", len(model.Namespaces()),
		"enums", enums,
		"messages", messages,
		"rpcs", rpcs)
	return model, nil
}

// Generate writes the proto files for model into the output directory.
func (g *Generator) Generate(model *schema.Model) (proto.Stats, error) {
	if g.opts.OutputDir == "" {
		return proto.Stats{}, errors.New("no output directory given")
	}
	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return proto.Stats{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	if g.opts.Clean {
		if err := g.clean(model); err != nil {
			return proto.Stats{}, err
		}
	}

	stats, err := proto.Generate(g.logger, proto.Options{
		OutputDir:      g.opts.OutputDir,
		ImportRoot:     g.opts.ImportRoot,
		LanguageOption: g.opts.LanguageOption,
		EnumOrder:      g.opts.EnumOrder,
	}, model)
	if err != nil {
		return stats, err
	}

	g.logger.Info("Proto generation complete", "output", g.opts.OutputDir, "files", stats.Files)
	return stats, nil
}

func (g *Generator) clean(model *schema.Model) error {
	for _, ns := range model.Namespaces() {
		path := filepath.Join(g.opts.OutputDir, schema.FileName(ns))
		err := os.Remove(path)
		switch {
		case err == nil:
			g.logger.Debug("Removed previous output", "path", path)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
