package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Alia5/protosynth/internal/codegen/schema"
)

var ErrNoInput = errors.New("no model files matched")

// Expand resolves glob patterns (with ** support) into a sorted list of
// files without duplicates.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoInput, patterns)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// Load decodes every file matched by patterns, up to jobs at a time, and
// applies them to a new model in path order, so the result does not depend
// on decoding order.
func Load(ctx context.Context, logger *slog.Logger, patterns []string, jobs int, opts ...schema.Option) (*schema.Model, error) {
	paths, err := Expand(patterns)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	docs := make([]*Document, len(paths))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(jobs)
	for i, path := range paths {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := DecodeFile(path)
			if err != nil {
				return err
			}
			logger.Debug("Decoded model file", "path", path, "namespaces", len(doc.Namespaces))
			docs[i] = doc
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	model := schema.NewModel(opts...)
	for i, doc := range docs {
		if err := Apply(logger, model, doc); err != nil {
			return nil, fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return model, nil
}

// Apply adds the declarations of doc to model. Within each namespace enums
// go first, then messages, then rpcs. Rpcs already registered are skipped.
func Apply(logger *slog.Logger, model *schema.Model, doc *Document) error {
	for _, ns := range doc.Namespaces {
		if ns.Name == "" {
			return errors.New("namespace without a name")
		}

		for _, e := range ns.Enums {
			enum, err := convertEnum(e)
			if err != nil {
				return fmt.Errorf("%s: %w", ns.Name, err)
			}
			model.AddEnum(ns.Name, enum)
		}

		for _, m := range ns.Messages {
			msg, err := convertMessage(m)
			if err != nil {
				return fmt.Errorf("%s: %w", ns.Name, err)
			}
			model.AddMessage(ns.Name, msg)
		}

		for _, r := range ns.Rpcs {
			rpc, err := convertMessage(r)
			if err != nil {
				return fmt.Errorf("%s: rpc %w", ns.Name, err)
			}
			if !model.AddRpc(ns.Name, rpc) {
				logger.Debug("Skipping duplicate rpc", "namespace", ns.Name, "rpc", rpc.Name)
			}
		}
	}
	return nil
}

func convertEnum(e Enum) (schema.Enum, error) {
	if e.Name == "" {
		return schema.Enum{}, errors.New("enum without a name")
	}
	out := schema.Enum{Name: e.Name}
	for _, entry := range e.Entries {
		if entry.Label == "" || entry.Value == "" {
			return schema.Enum{}, fmt.Errorf("enum %s: entry needs a label and a value", e.Name)
		}
		out.Entries = append(out.Entries, schema.EnumEntry{Label: entry.Label, Value: string(entry.Value)})
	}
	return out, nil
}

func convertMessage(m Message) (schema.Message, error) {
	if m.Name == "" {
		return schema.Message{}, errors.New("message without a name")
	}
	out := schema.Message{Name: m.Name}
	for _, f := range m.Fields {
		ft, err := schema.ParseFieldType(f.Type)
		if err != nil {
			return schema.Message{}, fmt.Errorf("%s.%s: %w", m.Name, f.Name, err)
		}
		out.Fields = append(out.Fields, schema.Field{Name: f.Name, Type: ft})
	}
	return out, nil
}
