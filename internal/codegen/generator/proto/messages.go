package proto

import (
	"fmt"

	"github.com/Alia5/protosynth/internal/codegen/schema"
	"github.com/Alia5/protosynth/internal/codegen/textgen"
)

func (g *generator) generateMessages() error {
	for ns, messages := range g.model.Messages() {
		g.ensureHeader(ns)

		// Imports depend on every message of the namespace, emitted or not,
		// so the block is reserved here and filled once all are seen.
		g.out.PushBlock(textgen.KindImports, ns)
		g.out.PopBlock(textgen.NewLineNever)

		var imports importSet
		for _, msg := range messages {
			imports.addMessage(msg)

			if msg.Name != schema.EmptyMessageName && !msg.Ready() {
				g.logger.Debug("Skipping message without resolved fields", "namespace", ns, "message", msg.Name)
				g.stats.Skipped++
				continue
			}
			g.writeMessage(msg)
		}

		block, err := g.out.FindBlock(textgen.KindImports)
		if err != nil {
			return err
		}
		if block == nil {
			return fmt.Errorf("%s: imports block missing", ns)
		}
		g.writeImports(block, ns, imports.names)

		if err := g.flush(ns); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) writeMessage(msg schema.Message) {
	g.out.PushBlock(textgen.KindMessage, msg)
	g.out.Write("message %s ", msg.Name)
	g.out.WriteOpenBraceAndIndent()

	for i, field := range msg.Fields {
		g.out.WriteLine("%s %s = %d;", field.Type, field.Name, i+1)
	}

	g.out.UnindentAndWriteCloseBrace()
	g.out.NewLine()
	g.out.PopBlock(textgen.NewLineNever)
}
