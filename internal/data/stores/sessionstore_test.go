package stores_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/lemma/internal/core/discovery"
	"github.com/proofdeck/lemma/internal/core/statement"
	"github.com/proofdeck/lemma/internal/data/db"
	"github.com/proofdeck/lemma/internal/data/stores"
)

func newTestStore(t *testing.T) *stores.SessionStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewSessionStore(database)
}

func testSnapshot(t *testing.T, problem string) discovery.Snapshot {
	t.Helper()
	g := discovery.New()
	g.Initialize(problem, statement.ProofState{{
		Goals: []statement.LabelledStatement{{
			Label:     "goal",
			Statement: &statement.Atomic{Text: "$x = x$"},
		}},
	}})
	require.NoError(t, g.Transition(
		discovery.Move{Kind: discovery.MoveEquivalence, Description: "reflexivity"},
		statement.ProofState{},
	))
	return g.Snapshot()
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, "commutativity", testSnapshot(t, "show $a+b=b+a$"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "commutativity", got.Name)
	assert.Equal(t, "show $a+b=b+a$", got.Statement)
	assert.Equal(t, created.Snapshot, got.Snapshot)
	assert.False(t, got.Solved)
}

func TestSessionStore_GetByName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, "assoc", testSnapshot(t, "p"))
	require.NoError(t, err)

	got, err := store.GetByName(ctx, "assoc")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, stores.ErrNotFound)
}

func TestSessionStore_Save(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, "s", testSnapshot(t, "p"))
	require.NoError(t, err)

	g := discovery.New()
	require.NoError(t, g.Restore(created.Snapshot))
	g.Finish()

	require.NoError(t, store.Save(ctx, created.ID, g.Snapshot()))

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Solved)
	assert.True(t, got.Snapshot.Solved)
}

func TestSessionStore_SaveMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Save(ctx, "nope", testSnapshot(t, "p"))
	assert.ErrorIs(t, err, stores.ErrNotFound)
}

func TestSessionStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Create(ctx, "first", testSnapshot(t, "p1"))
	require.NoError(t, err)
	_, err = store.Create(ctx, "second", testSnapshot(t, "p2"))
	require.NoError(t, err)

	// Touch the first session so it becomes most recent.
	require.NoError(t, store.Save(ctx, first.ID, first.Snapshot))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Name)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Create(ctx, "gone", testSnapshot(t, "p"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, stores.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, created.ID), stores.ErrNotFound)
}

func TestSessionStore_DuplicateName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Create(ctx, "dup", testSnapshot(t, "p"))
	require.NoError(t, err)

	_, err = store.Create(ctx, "dup", testSnapshot(t, "p"))
	assert.Error(t, err, "session names are unique")
}
