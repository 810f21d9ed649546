package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/docpress/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	HistoryDB string `name:"history-db" help:"Path to the build history database" default:"docpress-history.db"`
	Limit     int    `short:"n" help:"Number of builds to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, _ *CLI) error {
	store, err := history.NewStore(h.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no builds recorded")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %3d pages  %d failures  %d warnings\n",
			e.Finished.Format("2006-01-02 15:04:05"),
			e.BuildID,
			e.Documents,
			e.Failures,
			e.Warnings)
	}
	return nil
}
