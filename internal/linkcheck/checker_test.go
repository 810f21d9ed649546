package linkcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/config"
)

// capturePublisher collects published events for assertions.
type capturePublisher struct {
	events []BrokenLinkEvent
}

func (p *capturePublisher) Publish(_ context.Context, ev BrokenLinkEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *capturePublisher) Close() {}

func writeHTML(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestCheck_AllInternalTargetsExist(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "index.html", `<a href="/guide.html">guide</a>`)
	writeHTML(t, dir, "guide.html", `<a href="index.html">home</a>`)

	checker := NewChecker(config.LinkCheckConfig{}, "", nil)
	report, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)

	require.Equal(t, 2, report.Pages)
	require.Equal(t, 2, report.Checked)
	require.Empty(t, report.Issues)
}

func TestCheck_MissingTarget_Reported(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "index.html", `<a href="/gone.html">gone</a>`)

	checker := NewChecker(config.LinkCheckConfig{}, "", nil)
	report, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Issues, 1)
	require.Equal(t, "index.html", report.Issues[0].Page)
	require.Equal(t, "/gone.html", report.Issues[0].URL)
}

func TestCheck_RelativeLink_ResolvedAgainstPageDirectory(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "guide/setup.html", `<a href="usage.html">usage</a>`)
	writeHTML(t, dir, "guide/usage.html", `<p>usage</p>`)

	checker := NewChecker(config.LinkCheckConfig{}, "", nil)
	report, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
}

func TestCheck_PureFragment_NotAnIssue(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "index.html", `<a href="#top">top</a>`)

	checker := NewChecker(config.LinkCheckConfig{}, "", nil)
	report, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
}

func TestCheck_ExternalLinksSkippedByDefault(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "index.html", `<a href="https://unreachable.invalid/page">ext</a>`)

	checker := NewChecker(config.LinkCheckConfig{}, "", nil)
	report, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)
	require.Empty(t, report.Issues)
}

func TestCheck_IssuesPublishedAsEvents(t *testing.T) {
	dir := t.TempDir()
	writeHTML(t, dir, "index.html", `<a href="/gone.html">gone</a>`)

	pub := &capturePublisher{}
	checker := NewChecker(config.LinkCheckConfig{}, "", pub)
	_, err := checker.Check(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	require.Equal(t, "index.html", pub.events[0].Page)
	require.Equal(t, "/gone.html", pub.events[0].URL)
	require.False(t, pub.events[0].DetectedAt.IsZero())
}
