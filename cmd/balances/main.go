// Command balances serves and queries asset balance snapshots.
//
//	balances [-config file] [-v] <command> [flags]
//
// Commands: serve, import, migrate, balances.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to the YAML config file; empty for defaults and APP_* env only")
	verbosity  verbosityFlag
)

func main() {
	flag.Var(&verbosity, "v", "Verbosity; repeat (-v -v) or set (-v=3) to raise the log level")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{}, "server")
	commander.Register(&migrateCmd{}, "server")
	commander.Register(&importCmd{}, "data")
	commander.Register(&balancesCmd{}, "data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
