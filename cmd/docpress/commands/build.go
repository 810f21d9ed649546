package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpress/internal/build"
	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the rendered site" default:"./site"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	applyLoggingConfig(cfg, root.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	outputDir := ResolveOutputDir(b.Output, cfg)
	result, err := build.NewBuilder(cfg).Run(ctx, outputDir)
	if err != nil {
		return err
	}

	fmt.Println(result.Summary())
	return warningsError(len(result.Failures), len(result.BrokenLinks))
}

// warningsError converts a degraded-but-completed run into the warnings exit
// code. A clean run returns nil.
func warningsError(failures, brokenLinks int) error {
	if failures == 0 && brokenLinks == 0 {
		return nil
	}
	return derrors.New(derrors.CategoryLink, derrors.SeverityWarning,
		fmt.Sprintf("completed with %d document failures and %d broken links", failures, brokenLinks))
}
