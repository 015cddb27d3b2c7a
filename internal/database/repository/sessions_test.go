package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blake7/watchstopwatch/internal/database"
	"github.com/blake7/watchstopwatch/internal/database/repository"
)

func newRepo(t *testing.T) *repository.SessionRepo {
	t.Helper()
	db, err := database.OpenArchive(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSessionRepo(db)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := newRepo(t)

	at := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, repository.Session{
		ID:            "s1",
		RecordedAt:    at,
		ElapsedMillis: 9500,
		Laps:          []int64{5000, 8000},
	}))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.ID)
	require.True(t, at.Equal(got.RecordedAt), "recorded_at %s", got.RecordedAt)
	require.EqualValues(t, 9500, got.ElapsedMillis)
	require.Equal(t, 2, got.LapCount)
	require.Equal(t, []int64{5000, 8000}, got.Laps)
}

func TestSessionListNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	base := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, repository.Session{
			ID:            id,
			RecordedAt:    base.Add(time.Duration(i) * time.Minute),
			ElapsedMillis: int64(i+1) * 1000,
		}))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "c", all[0].ID)
	require.Equal(t, "a", all[2].ID)
	require.Nil(t, all[0].Laps)

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
}

func TestSessionListEmpty(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	list, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestSessionGetMissing(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionDeleteAllCascadesLaps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Insert(ctx, repository.Session{ID: "x", RecordedAt: time.Now(), ElapsedMillis: 1, Laps: []int64{1}}))
	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = repo.Get(ctx, "x")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionInsertDuplicateRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	s := repository.Session{ID: "dup", RecordedAt: time.Now(), ElapsedMillis: 10, Laps: []int64{5}}
	require.NoError(t, repo.Insert(ctx, s))
	require.Error(t, repo.Insert(ctx, s))

	got, err := repo.Get(ctx, "dup")
	require.NoError(t, err)
	require.Equal(t, []int64{5}, got.Laps)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, database.RunMigrations(path))
	require.NoError(t, database.RunMigrations(path))
}
