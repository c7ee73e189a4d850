package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docaudit/cmd/docaudit/commands"
	"git.home.luguber.info/inful/docaudit/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("docaudit"),
		kong.Description("Audit MkDocs navigation vs on-disk markdown: missing nav entries, ghost files, broken links, image references, and help URL coverage."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli)
	ctx.FatalIfErrorf(err)
}
