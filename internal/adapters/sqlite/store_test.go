package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/application"
	"folio/internal/domain"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "folio.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_LoadEmpty(t *testing.T) {
	s := openTestStore(t)

	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewPortfolio(), p)
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	sample := domain.SamplePortfolio()

	require.NoError(t, s.Save(ctx, sample))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, got)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "folio.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, domain.SamplePortfolio()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.AllProjects(), 3)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Save(ctx, domain.SamplePortfolio()))

	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)

	revs, err := s.Revisions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, revs, 1, "clearing keeps the revision log")
}

func TestStore_Revisions(t *testing.T) {
	ctx := context.Background()
	clock := time.Unix(1700000000, 0)
	s := openTestStore(t, WithKeepRevisions(2))
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	p := domain.SamplePortfolio()
	for _, name := range []string{"first", "second", "second", "third"} {
		p.Personal.Name = name
		require.NoError(t, s.Save(ctx, p))
	}

	revs, err := s.Revisions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, revs, 2, "identical saves are not recorded and old revisions are pruned")
	assert.Greater(t, revs[0].ID, revs[1].ID)
	assert.Greater(t, revs[0].Size, 0)

	older, err := s.Restore(ctx, revs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "second", older.Personal.Name)

	current, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "third", current.Personal.Name, "restore does not write")
}

func TestStore_RestoreUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Restore(context.Background(), 42)
	assert.True(t, errors.Is(err, application.ErrNotFound))
}

func TestStore_RevisionsDisabled(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, WithKeepRevisions(0))
	require.NoError(t, s.Save(ctx, domain.SamplePortfolio()))

	revs, err := s.Revisions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/folio", "folio.db"), DatabasePath("/srv/folio"))

	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "folio", "folio.db"), DatabasePath(""))
}

// BenchmarkSave measures one document write with revision bookkeeping
func BenchmarkSave(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "folio.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}()

	ctx := context.Background()
	p := domain.SamplePortfolio()
	i := 0
	for b.Loop() {
		i++
		p.Personal.Tagline = time.Duration(i).String()
		if err := s.Save(ctx, p); err != nil {
			b.Fatalf("save failed: %v", err)
		}
	}
}
