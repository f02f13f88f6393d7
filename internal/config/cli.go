// Package config declares the root command line of mavgen.
package config

import (
	"github.com/wuespace/mavgen/internal/cmd"
	"github.com/wuespace/mavgen/internal/log"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  string           `help:"Configuration file (json, yaml or toml); flags and environment override it" type:"path" env:"MAVGEN_CONFIG"`
	Log     log.Options      `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Generate  cmd.Generate      `cmd:"" help:"Generate typed records from MAVLink XML definitions"`
	Dump      cmd.Dump          `cmd:"" help:"Print the wire layout and CRC-EXTRA of every message in a definition file"`
	Verify    cmd.Verify        `cmd:"" help:"Check generated records against their manifest"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
