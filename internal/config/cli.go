package config

import (
	"github.com/Alia5/protosynth/internal/cmd"

	"github.com/alecthomas/kong"
)

type Log struct {
	Level  string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"PROTOSYNTH_LOG_LEVEL"`
	Format string `help:"Log output format" default:"text" enum:"text,json" env:"PROTOSYNTH_LOG_FORMAT"`
	File   string `help:"Also write logs to this file" type:"path" env:"PROTOSYNTH_LOG_FILE"`
}

// CLI is the root of the command line. Flags may also be set from a
// configuration file; see configpaths.ConfigCandidatePaths.
type CLI struct {
	Log        Log              `embed:"" prefix:"log."`
	ConfigFile string           `name:"config" help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"PROTOSYNTH_CONFIG"`
	Version    kong.VersionFlag `help:"Print the version and exit"`

	Generate cmd.Generate      `cmd:"" help:"Generate .proto files from model files"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration helpers"`
}
