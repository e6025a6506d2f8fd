package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rhaidoc/cmd/rhaidoc/commands"
	"git.home.luguber.info/inful/rhaidoc/internal/config"
	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("rhaidoc"),
		kong.Description("Generate a static documentation site from Rhai scripts and markdown pages."),
		kong.UsageOnError(),
		kong.Vars{
			"version":     version.String(),
			"config_file": config.DefaultFile,
		},
	)

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
