package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpress/cmd/docpress/commands"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	ctx := kong.Parse(cli,
		kong.Name("docpress"),
		kong.Description("Static documentation renderer: loads Markdown pages and renders a cross-linked HTML site."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Bind(global),
		kong.Bind(cli),
	)

	err := ctx.Run()
	adapter := derrors.NewCLIErrorAdapter(cli.Verbose, nil)
	adapter.HandleError(err)
}
