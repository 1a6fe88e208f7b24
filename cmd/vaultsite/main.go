package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vaultsite/cmd/vaultsite/commands"
	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("vaultsite"),
		kong.Description("Convert an exported notes vault into a Zola content tree."),
		kong.UsageOnError(),
	)

	logger := slog.Default()
	err := parser.Run(&commands.Global{Logger: logger}, &cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
}
