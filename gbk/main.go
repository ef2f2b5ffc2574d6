// Command gbk keeps the books of a gold shop.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/goldbook/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	// exits when called by the shell to complete a command line
	cmd.Completion(flag.CommandLine).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
