package linkcheck

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
)

// Issue is one broken link found during verification.
type Issue struct {
	Page   string `json:"page"`   // HTML file containing the link
	URL    string `json:"url"`    // Raw link destination
	Reason string `json:"reason"` // Why it is considered broken
}

// Report summarizes a verification run over an output directory.
type Report struct {
	Pages   int     `json:"pages"`
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// Checker verifies links in a rendered output directory.
type Checker struct {
	cfg        config.LinkCheckConfig
	baseURL    string
	httpClient *http.Client
	publisher  Publisher
}

// NewChecker creates a Checker. publisher may be nil when event publishing is
// not configured.
func NewChecker(cfg config.LinkCheckConfig, baseURL string, publisher Publisher) *Checker {
	return &Checker{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		publisher:  publisher,
	}
}

// Check walks outputDir, extracts links from every HTML page, and verifies
// that internal targets exist among the emitted artifacts. External URLs are
// probed only when configured.
func (c *Checker) Check(ctx context.Context, outputDir string) (*Report, error) {
	pages, err := collectHTMLFiles(outputDir)
	if err != nil {
		return nil, err
	}

	report := &Report{Pages: len(pages)}
	for _, page := range pages {
		links, err := ExtractLinks(filepath.Join(outputDir, page), c.baseURL)
		if err != nil {
			report.Issues = append(report.Issues, Issue{Page: page, Reason: err.Error()})
			continue
		}
		for _, link := range links {
			if err := ctx.Err(); err != nil {
				return nil, derrors.WrapError(err, derrors.CategoryLink, "link check canceled")
			}
			report.Checked++
			if issue := c.verify(ctx, outputDir, page, link); issue != nil {
				report.Issues = append(report.Issues, *issue)
			}
		}
	}

	c.publishIssues(ctx, report.Issues)
	slog.Info("Link check finished",
		logfields.Count(report.Checked),
		logfields.Warnings(len(report.Issues)))
	return report, nil
}

// verify returns a non-nil Issue when the link is broken.
func (c *Checker) verify(ctx context.Context, outputDir, page string, link *Link) *Issue {
	if !link.IsInternal {
		if !c.cfg.External {
			return nil
		}
		return c.probeExternal(ctx, page, link)
	}

	dest := link.URL
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return nil // Pure fragment; the page itself exists.
	}

	var rel string
	if strings.HasPrefix(dest, "/") {
		rel = strings.TrimPrefix(dest, "/")
	} else {
		rel = path.Join(path.Dir(page), dest)
	}
	target := filepath.Join(outputDir, filepath.FromSlash(rel))
	if _, err := os.Stat(target); err != nil {
		return &Issue{Page: page, URL: link.URL, Reason: "target not found in output"}
	}
	return nil
}

// probeExternal issues a HEAD request against an external URL.
func (c *Checker) probeExternal(ctx context.Context, page string, link *Link) *Issue {
	u, err := url.Parse(link.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil // mailto:, etc. are out of scope.
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link.URL, nil)
	if err != nil {
		return &Issue{Page: page, URL: link.URL, Reason: err.Error()}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Issue{Page: page, URL: link.URL, Reason: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &Issue{Page: page, URL: link.URL, Reason: resp.Status}
	}
	return nil
}

func (c *Checker) publishIssues(ctx context.Context, issues []Issue) {
	if c.publisher == nil {
		return
	}
	for _, issue := range issues {
		if err := c.publisher.Publish(ctx, BrokenLinkEvent{
			Page:       issue.Page,
			URL:        issue.URL,
			Reason:     issue.Reason,
			DetectedAt: time.Now().UTC(),
		}); err != nil {
			slog.Warn("Failed to publish broken link event", logfields.Error(err))
		}
	}
}

// collectHTMLFiles returns the sorted site-relative paths of all HTML pages.
func collectHTMLFiles(outputDir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to walk output directory")
	}
	sort.Strings(pages)
	return pages, nil
}
