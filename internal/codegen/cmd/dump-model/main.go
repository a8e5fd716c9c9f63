// dump-model prints the model assembled from the given model files as JSON,
// including the messages synthesized for rpcs.
//
// Usage: go run ./internal/codegen/cmd/dump-model 'models/**/*.yaml'
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/Alia5/protosynth/internal/codegen/input"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dump-model <glob>...")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	model, err := input.Load(context.Background(), logger, os.Args[1:], 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load model: %v\n", err)
		os.Exit(1)
	}

	output, err := json.MarshalIndent(input.FromModel(model), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
