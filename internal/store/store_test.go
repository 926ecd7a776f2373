package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleRuns(now time.Time) []Run {
	return []Run{
		NewRun(Run{Instance: "ks_4_0", Solver: "BnB", Value: 7, Weight: 5, ElapsedMS: 1, Selection: []bool{true, true, false, false}}, now),
		NewRun(Run{Instance: "ks_4_0", Solver: "GA", Value: 7, Weight: 5, ElapsedMS: 3, Seed: 42, Selection: []bool{true, true, false, false}}, now),
		NewRun(Run{Instance: "ks_19_0", Solver: "BnB", Value: 12248, Weight: 31181, Selection: []bool{false, true}}, now),
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.ListRuns(ctx, "ks_4_0")
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, s.Init(ctx))
	t.Cleanup(func() { _ = CloseIfSupported(s) })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	runs := sampleRuns(now)
	for _, r := range runs {
		require.NoError(t, s.SaveRun(ctx, r))
	}

	got, ok, err := s.GetRun(ctx, runs[1].ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, runs[1], got)

	_, ok, err = s.GetRun(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	list, err := s.ListRuns(ctx, "ks_4_0")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "BnB", list[0].Solver)
	require.Equal(t, "GA", list[1].Solver)

	// Saving an existing ID updates it in place.
	upd := runs[0]
	upd.Value = 8
	require.NoError(t, s.SaveRun(ctx, upd))
	list, err = s.ListRuns(ctx, "ks_4_0")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 8, list[0].Value)

	list, err = s.ListRuns(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	exerciseStore(t, NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db")))
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	first := NewSQLiteStore(path)
	require.NoError(t, first.Init(ctx))
	run := NewRun(Run{Instance: "a", Solver: "GA", Value: 3, Selection: []bool{true}}, time.Now())
	require.NoError(t, first.SaveRun(ctx, run))
	require.NoError(t, first.Close())

	second := NewSQLiteStore(path)
	require.NoError(t, second.Init(ctx))
	defer second.Close()
	got, ok, err := second.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, run.Value, got.Value)
	require.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	require.Error(t, NewSQLiteStore("").Init(context.Background()))
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("none", "")
	require.NoError(t, err)
	require.Nil(t, s)
	require.NoError(t, CloseIfSupported(s))

	s, err = NewStore("memory", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = NewStore("sqlite", "x.db")
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)

	_, err = NewStore("postgres", "")
	require.Error(t, err)
}

func TestNewRunKeepsExplicitFields(t *testing.T) {
	now := time.Now()
	r := NewRun(Run{ID: "fixed"}, now)
	require.Equal(t, "fixed", r.ID)
	require.Equal(t, now.UTC(), r.CreatedAt)

	a, b := NewRun(Run{}, now), NewRun(Run{}, now)
	require.NotEqual(t, a.ID, b.ID)
}

func TestSelectionCodec(t *testing.T) {
	sel := []bool{true, false, false, true}
	require.Equal(t, "1001", encodeSelection(sel))
	require.Equal(t, sel, decodeSelection("1001"))
	require.Empty(t, decodeSelection(""))
}
