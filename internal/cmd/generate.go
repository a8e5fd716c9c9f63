package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/protosynth/internal/codegen/generator"
	"github.com/Alia5/protosynth/internal/codegen/generator/proto"
)

type Generate struct {
	Input          []string `help:"Model files (JSON, YAML or TOML). Glob patterns; ** matches any number of directories" required:"" short:"i" env:"PROTOSYNTH_INPUT"`
	Output         string   `help:"Directory the .proto files are written to" required:"" short:"o" env:"PROTOSYNTH_OUTPUT"`
	ImportRoot     string   `help:"Prefix of every import path" default:"Protos/DataService/Models/" env:"PROTOSYNTH_IMPORT_ROOT"`
	LanguageOption string   `help:"File option set to the title-cased namespace" default:"csharp_namespace" env:"PROTOSYNTH_LANGUAGE_OPTION"`
	ResultType     string   `help:"Type of the result field of synthesized response messages" default:"data.service.models.protobuf.ResultCode" env:"PROTOSYNTH_RESULT_TYPE"`
	EnumOrder      string   `help:"Order of enum entries after the zero entry" enum:"lexical,numeric" default:"lexical" env:"PROTOSYNTH_ENUM_ORDER"`
	Clean          bool     `help:"Remove the files about to be generated first instead of appending to them" env:"PROTOSYNTH_CLEAN"`
	Jobs           int      `help:"Model files decoded in parallel (0 uses one per CPU)" default:"0" env:"PROTOSYNTH_JOBS"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting proto generation", "input", g.Input, "output", g.Output)

	gen := generator.New(generator.Options{
		OutputDir:      g.Output,
		ImportRoot:     g.ImportRoot,
		LanguageOption: g.LanguageOption,
		EnumOrder:      proto.EnumOrder(g.EnumOrder),
		ResultType:     g.ResultType,
		Clean:          g.Clean,
		Jobs:           g.Jobs,
	}, logger)

	model, err := gen.LoadModel(ctx, g.Input)
	if err != nil {
		return err
	}
	_, err = gen.Generate(model)
	return err
}
