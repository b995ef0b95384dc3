// Command tools holds operator commands for the dashboard: access key
// management and filter inspection against the live company table.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "config/config.yaml", "path to the config file")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&hashKeyCmd{}, "keys")
	commander.Register(&addKeyCmd{}, "keys")
	commander.Register(&optionsCmd{}, "filters")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
