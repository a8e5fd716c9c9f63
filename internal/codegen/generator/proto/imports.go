package proto

import (
	"github.com/Alia5/protosynth/internal/codegen/schema"
	"github.com/Alia5/protosynth/internal/codegen/textgen"
)

// importSet collects referenced namespaces in first-seen order.
type importSet struct {
	names []string
	seen  map[string]struct{}
}

func (s *importSet) add(ns string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[ns]; ok {
		return
	}
	s.seen[ns] = struct{}{}
	s.names = append(s.names, ns)
}

func (s *importSet) addMessage(msg schema.Message) {
	for _, field := range msg.Fields {
		for _, ns := range field.Type.Namespaces() {
			s.add(ns)
		}
	}
}

// writeImports writes one import line per namespace into block, skipping the
// file being generated, and a blank line after them if any were written.
func (g *generator) writeImports(block *textgen.Block, self string, namespaces []string) {
	selfFile := schema.FileName(self)

	written := make(map[string]struct{})
	for _, ns := range namespaces {
		file := schema.FileName(ns)
		if file == selfFile {
			continue
		}
		if _, ok := written[file]; ok {
			continue
		}
		written[file] = struct{}{}
		block.WriteLine(`import "%s";`, schema.ImportName(g.opts.ImportRoot, ns))
	}
	if len(written) > 0 {
		block.NewLine()
	}
}
