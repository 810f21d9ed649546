package build

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docpress/internal/loader"
)

// BrokenLinkReport is one unresolved internal link found during rendering.
type BrokenLinkReport struct {
	Slug        string // Page containing the link
	Destination string // Raw link destination
}

// Result summarizes one build run.
type Result struct {
	BuildID     string
	Started     time.Time
	Finished    time.Time
	OutputDir   string
	SetHash     string
	Documents   int // Pages rendered and written
	Failures    []loader.Failure
	BrokenLinks []BrokenLinkReport
}

// Clean reports whether the run completed without failures or warnings.
func (r *Result) Clean() bool {
	return len(r.Failures) == 0 && len(r.BrokenLinks) == 0
}

// Summary returns a one-line human-readable outcome.
func (r *Result) Summary() string {
	return fmt.Sprintf("built %d pages, %d failures, %d broken links (output %s)",
		r.Documents, len(r.Failures), len(r.BrokenLinks), r.OutputDir)
}
