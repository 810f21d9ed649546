package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/document"
)

func setOf(t *testing.T, docs ...*document.Document) *document.Set {
	t.Helper()
	set, err := document.NewSet(docs)
	require.NoError(t, err)
	return set
}

func page(slug, content string) *document.Document {
	return &document.Document{
		Slug:        slug,
		SourcePath:  slug + ".md",
		Raw:         []byte(content),
		ContentHash: document.HashContent([]byte(content)),
	}
}

func TestComputeSetHash_Deterministic(t *testing.T) {
	a := setOf(t, page("a", "one"), page("b", "two"))
	b := setOf(t, page("b", "two"), page("a", "one"))

	require.Equal(t, ComputeSetHash(a), ComputeSetHash(b))
}

func TestComputeSetHash_ChangesWithContent(t *testing.T) {
	before := setOf(t, page("a", "one"))
	after := setOf(t, page("a", "changed"))

	require.NotEqual(t, ComputeSetHash(before), ComputeSetHash(after))
}

func TestComputeSetHash_EmptySet_KnownStableHash(t *testing.T) {
	empty := setOf(t)
	require.Equal(t, ComputeSetHash(empty), ComputeSetHash(empty))
	require.NotEmpty(t, ComputeSetHash(empty))
}

func TestFromSet_RecordsEveryPage(t *testing.T) {
	set := setOf(t, page("guide/a", "one"), page("b", "two"))
	m := FromSet("build-1", set, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	require.Equal(t, "build-1", m.BuildID)
	require.Equal(t, 2, m.PageCount())
	require.Equal(t, ComputeSetHash(set), m.SetHash)

	bySlug := map[string]PageEntry{}
	for _, p := range m.Pages {
		bySlug[p.Slug] = p
	}
	require.Equal(t, "guide/a.md", bySlug["guide/a"].Source)
	require.Equal(t, "guide/a.html", bySlug["guide/a"].Output)
	require.NotEmpty(t, bySlug["b"].ContentHash)
}

func TestWriteAndFromJSON_RoundTrip(t *testing.T) {
	set := setOf(t, page("a", "one"))
	m := FromSet("build-2", set, time.Now())

	dir := t.TempDir()
	require.NoError(t, m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	got, err := FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, m.BuildID, got.BuildID)
	require.Equal(t, m.SetHash, got.SetHash)
	require.Equal(t, m.PageCount(), got.PageCount())
}
