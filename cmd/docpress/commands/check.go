package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpress/internal/build"
	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/linkcheck"
)

// CheckCmd implements the 'check' command: build into a scratch directory and
// verify links in the rendered output.
type CheckCmd struct {
	External bool `help:"Also probe external http(s) links"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	applyLoggingConfig(cfg, root.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	scratch, err := os.MkdirTemp("", "docpress-check-*")
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create scratch directory")
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	result, err := build.NewBuilder(cfg).Run(ctx, scratch)
	if err != nil {
		return err
	}

	lcCfg := cfg.LinkCheck
	if c.External {
		lcCfg.External = true
	}

	var publisher linkcheck.Publisher
	if lcCfg.NATSURL != "" {
		natsPub, err := linkcheck.NewNATSPublisher(lcCfg)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryNetwork, "failed to initialize link event publisher")
		}
		defer natsPub.Close()
		publisher = natsPub
	}

	report, err := linkcheck.NewChecker(lcCfg, cfg.Site.BaseURL, publisher).Check(ctx, scratch)
	if err != nil {
		return err
	}

	for _, issue := range report.Issues {
		fmt.Printf("BROKEN %s -> %s (%s)\n", issue.Page, issue.URL, issue.Reason)
	}
	fmt.Printf("checked %d links across %d pages, %d broken\n",
		report.Checked, report.Pages, len(report.Issues))

	return warningsError(len(result.Failures), len(result.BrokenLinks)+len(report.Issues))
}
