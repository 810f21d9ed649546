package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/frontmatter"
)

func doc(slug string, weight int) *Document {
	return &Document{
		Slug:       slug,
		SourcePath: slug + ".md",
		Meta:       frontmatter.Meta{Weight: weight},
		Title:      slug,
	}
}

func TestNewSet_OrdersByWeightThenSlug(t *testing.T) {
	set, err := NewSet([]*Document{
		doc("zebra", 0),
		doc("beta", 2),
		doc("alpha", 0),
		doc("gamma", 1),
	})
	require.NoError(t, err)

	var slugs []string
	for _, d := range set.Documents() {
		slugs = append(slugs, d.Slug)
	}
	// Weighted pages first, then unweighted alphabetically.
	require.Equal(t, []string{"gamma", "beta", "alpha", "zebra"}, slugs)
}

func TestNewSet_DuplicateSlug_ReturnsError(t *testing.T) {
	_, err := NewSet([]*Document{doc("intro", 0), doc("intro", 0)})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestNav_MiddleDocument_HasPrevAndNext(t *testing.T) {
	set, err := NewSet([]*Document{doc("a", 1), doc("b", 2), doc("c", 3)})
	require.NoError(t, err)

	edge := set.Nav("b")
	require.NotNil(t, edge.Prev)
	require.NotNil(t, edge.Next)
	require.Equal(t, "a", edge.Prev.Slug)
	require.Equal(t, "c", edge.Next.Slug)
}

func TestNav_ChainEnds_AreNil(t *testing.T) {
	set, err := NewSet([]*Document{doc("a", 1), doc("b", 2)})
	require.NoError(t, err)

	first := set.Nav("a")
	require.Nil(t, first.Prev)
	require.Equal(t, "b", first.Next.Slug)

	last := set.Nav("b")
	require.Equal(t, "a", last.Prev.Slug)
	require.Nil(t, last.Next)
}

func TestNav_UnknownSlug_ReturnsEmptyEdge(t *testing.T) {
	set, err := NewSet([]*Document{doc("a", 1)})
	require.NoError(t, err)

	edge := set.Nav("missing")
	require.Nil(t, edge.Prev)
	require.Nil(t, edge.Next)
}

func TestLookup_FindsBySlug(t *testing.T) {
	set, err := NewSet([]*Document{doc("guide/intro", 0)})
	require.NoError(t, err)

	found, ok := set.Lookup("guide/intro")
	require.True(t, ok)
	require.Equal(t, "guide/intro.md", found.SourcePath)

	_, ok = set.Lookup("absent")
	require.False(t, ok)
}

func TestLookupBySource_FindsByRelativePath(t *testing.T) {
	set, err := NewSet([]*Document{doc("guide/intro", 0)})
	require.NoError(t, err)

	found, ok := set.LookupBySource("guide/intro.md")
	require.True(t, ok)
	require.Equal(t, "guide/intro", found.Slug)

	_, ok = set.LookupBySource("guide/absent.md")
	require.False(t, ok)
}

func TestRenderedPath_AndOutputFile(t *testing.T) {
	require.Equal(t, "/guide/intro.html", RenderedPath("guide/intro"))
	require.Equal(t, "guide/intro.html", OutputFile("guide/intro"))
}
