package proto

import (
	"github.com/Alia5/protosynth/internal/codegen/common"
	"github.com/Alia5/protosynth/internal/codegen/schema"
	"github.com/Alia5/protosynth/internal/codegen/textgen"
)

func (g *generator) generateServices() error {
	for ns, rpcs := range g.model.Rpcs() {
		g.ensureHeader(ns)

		models := schema.ModelsNamespace(ns)
		imports := g.out.PushBlock(textgen.KindImports, ns)
		g.out.PopBlock(textgen.NewLineNever)
		g.writeImports(imports, ns, []string{schema.DefaultNamespace, models})

		g.out.PushBlock(textgen.KindService, ns)
		g.out.Write("service %s ", common.ToPascalCase(schema.TrimSuffix(ns)))
		g.out.WriteOpenBraceAndIndent()
		for _, rpc := range rpcs {
			g.writeRpc(models, rpc)
		}
		g.out.UnindentAndWriteCloseBrace()
		g.out.PopBlock(textgen.NewLineNever)

		if err := g.flush(ns); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) writeRpc(models string, rpc schema.Message) {
	request := "." + schema.DefaultNamespace + "." + schema.EmptyMessageName
	if rpc.Ready() {
		request = "." + models + "." + rpc.Name + "Request"
	}
	response := "." + models + "." + rpc.Name + "Response"

	g.out.PushBlock(textgen.KindRpc, rpc)
	g.out.WriteLine("rpc %s(%s) returns (%s);", rpc.Name, request, response)
	g.out.PopBlock(textgen.NewLineNever)
}
