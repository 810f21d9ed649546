package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpress/internal/config"
	"git.home.luguber.info/inful/docpress/internal/loader"
)

// ListCmd implements the 'list' command: discovery without rendering.
type ListCmd struct{}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	applyLoggingConfig(cfg, root.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	docsRoot, cleanup, err := loader.ResolveSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := loader.New(docsRoot).Load()
	if err != nil {
		return err
	}

	for _, doc := range result.Set.Documents() {
		fmt.Printf("%-40s %-40s %s\n", doc.Slug, doc.Title, doc.SourcePath)
	}
	if len(result.Assets) > 0 {
		fmt.Printf("\n%d assets (not rendered)\n", len(result.Assets))
	}
	for _, failure := range result.Failures {
		fmt.Printf("FAILED %s: %v\n", failure.Path, failure.Err)
	}

	fmt.Printf("\n%d documents, %d failures\n", result.Set.Len(), len(result.Failures))
	return warningsError(len(result.Failures), 0)
}
