package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/config"
	"git.home.luguber.info/inful/docpress/internal/document"
	"git.home.luguber.info/inful/docpress/internal/frontmatter"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{Title: "Test Docs"}
}

func mustSet(t *testing.T, docs ...*document.Document) *document.Set {
	t.Helper()
	set, err := document.NewSet(docs)
	require.NoError(t, err)
	return set
}

func mdDoc(slug, title string, weight int, body string) *document.Document {
	return &document.Document{
		Slug:        slug,
		SourcePath:  slug + ".md",
		Body:        []byte(body),
		Meta:        frontmatter.Meta{Weight: weight},
		Title:       title,
		ContentHash: document.HashContent([]byte(body)),
	}
}

func TestRenderDocument_CrossDocumentLink_Resolved(t *testing.T) {
	a := mdDoc("a", "Title", 1, "# Title\n[next](b.md)\n")
	b := mdDoc("b", "Other", 2, "# Other\n")
	set := mustSet(t, a, b)

	r, err := New(testSite())
	require.NoError(t, err)

	page, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	require.Empty(t, page.BrokenLinks)
	require.Contains(t, string(page.HTML), `<a href="/b.html">next</a>`)
}

func TestRenderDocument_DanglingLink_DisabledWithWarning(t *testing.T) {
	a := mdDoc("a", "A", 1, "[x](missing.md)\n")
	set := mustSet(t, a)

	r, err := New(testSite())
	require.NoError(t, err)

	page, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	require.Len(t, page.BrokenLinks, 1)
	require.Equal(t, "missing.md", page.BrokenLinks[0].Destination)
	require.Contains(t, string(page.HTML), `<a class="broken-link" aria-disabled="true">x</a>`)
}

func TestRenderDocument_NavChain_PrevAndNextEmitted(t *testing.T) {
	a := mdDoc("a", "First", 1, "# First\n")
	b := mdDoc("b", "Second", 2, "# Second\n")
	c := mdDoc("c", "Third", 3, "# Third\n")
	set := mustSet(t, a, b, c)

	r, err := New(testSite())
	require.NoError(t, err)

	page, err := r.RenderDocument(b, set)
	require.NoError(t, err)
	html := string(page.HTML)
	require.Contains(t, html, `<a rel="prev" href="/a.html">`)
	require.Contains(t, html, `<a rel="next" href="/c.html">`)
}

func TestRenderDocument_ChainEnds_OmitMissingNav(t *testing.T) {
	a := mdDoc("a", "First", 1, "# First\n")
	b := mdDoc("b", "Second", 2, "# Second\n")
	set := mustSet(t, a, b)

	r, err := New(testSite())
	require.NoError(t, err)

	first, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	require.NotContains(t, string(first.HTML), `rel="prev"`)
	require.Contains(t, string(first.HTML), `rel="next"`)
}

func TestRenderDocument_SameInput_ByteIdentical(t *testing.T) {
	a := mdDoc("a", "A", 1, "# A\n[next](b.md)\n```\ncode *stays*\n```\n")
	b := mdDoc("b", "B", 2, "# B\n")
	set := mustSet(t, a, b)

	r, err := New(testSite())
	require.NoError(t, err)

	first, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	second, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	require.Equal(t, first.HTML, second.HTML)
}

func TestRenderDocument_TitleEscapedInLayout(t *testing.T) {
	a := mdDoc("a", `Danger <script>`, 1, "body\n")
	set := mustSet(t, a)

	r, err := New(testSite())
	require.NoError(t, err)

	page, err := r.RenderDocument(a, set)
	require.NoError(t, err)
	require.NotContains(t, string(page.HTML), "<script>")
}

func TestRenderIndex_ListsAllPagesInSetOrder(t *testing.T) {
	a := mdDoc("b-second", "Second", 2, "# Second\n")
	b := mdDoc("a-first", "First", 1, "# First\n")
	set := mustSet(t, a, b)

	r, err := New(config.SiteConfig{Title: "Test Docs", Description: "A test set"})
	require.NoError(t, err)

	page, err := r.RenderIndex(set)
	require.NoError(t, err)
	require.Equal(t, "index.html", page.OutputFile)

	html := string(page.HTML)
	require.Contains(t, html, `<a href="/a-first.html">First</a>`)
	require.Contains(t, html, `<a href="/b-second.html">Second</a>`)
	require.Contains(t, html, "A test set")

	// Set order: weight 1 before weight 2.
	require.Less(t, strings.Index(html, "a-first.html"), strings.Index(html, "b-second.html"))
}
