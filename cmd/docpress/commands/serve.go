package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpress/internal/config"
	"git.home.luguber.info/inful/docpress/internal/history"
	"git.home.luguber.info/inful/docpress/internal/loader"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/server"
)

// ServeCmd implements the 'serve' command: build, watch, and serve locally.
type ServeCmd struct {
	Output    string `short:"o" help:"Output directory for the rendered site" default:"./site"`
	Port      int    `short:"p" help:"Port to listen on (overrides config)"`
	HistoryDB string `name:"history-db" help:"Path to the build history database" default:"docpress-history.db"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	applyLoggingConfig(cfg, root.Verbose)
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	docsRoot, cleanup, err := loader.ResolveSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := history.NewStore(s.HistoryDB)
	if err != nil {
		// Serving works without history; degrade rather than abort.
		slog.Warn("Build history unavailable", logfields.Error(err))
		store = nil
	} else {
		defer func() { _ = store.Close() }()
	}

	outputDir := ResolveOutputDir(s.Output, cfg)
	return server.New(cfg, docsRoot, outputDir, store).Run(ctx)
}
