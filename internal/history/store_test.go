package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docpress/internal/build"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func resultWithID(id string) *build.Result {
	return &build.Result{
		BuildID:   id,
		Started:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Finished:  time.Date(2026, 3, 1, 10, 0, 2, 0, time.UTC),
		Documents: 4,
		SetHash:   "hash-" + id,
	}
}

func TestRecordAndLast(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	result := resultWithID("b1")
	result.BrokenLinks = []build.BrokenLinkReport{{Slug: "intro", Destination: "gone.md"}}
	require.NoError(t, store.Record(ctx, result))

	last, err := store.Last(ctx)
	require.NoError(t, err)
	require.Equal(t, "b1", last.BuildID)
	require.Equal(t, 4, last.Documents)
	require.Equal(t, 1, last.Warnings)
	require.Equal(t, "hash-b1", last.SetHash)
	require.Equal(t, result.Started, last.Started)
}

func TestRecent_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, store.Record(ctx, resultWithID(id)))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "b3", entries[0].BuildID)
	require.Equal(t, "b2", entries[1].BuildID)
}

func TestLast_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Last(context.Background())
	require.ErrorIs(t, err, ErrNoBuilds)
}

func TestNewStore_PersistsToFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), resultWithID("b1")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	last, err := reopened.Last(context.Background())
	require.NoError(t, err)
	require.Equal(t, "b1", last.BuildID)
}
