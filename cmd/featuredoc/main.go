package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/featuredoc/cmd/featuredoc/commands"
	ferrors "git.home.luguber.info/inful/featuredoc/internal/foundation/errors"
	"git.home.luguber.info/inful/featuredoc/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("featuredoc"),
		kong.Description("Generate HTML reference documentation for feature-annotated Go types."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := parser.Run(global, &cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
