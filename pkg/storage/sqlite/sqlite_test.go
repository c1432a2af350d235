package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	store := initSqlite(t, context.Background())
	assert.NotNil(t, store)

	version, dirty, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestNew_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "showtrack.db")

	store, err := New(ctx, path)
	require.NoError(t, err)

	_, err = store.CreateShow(ctx, "Frieren", 52991, 3)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = New(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	shows, err := store.ListShows(ctx, storage.SortByIDAsc)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "Frieren", shows[0].Title)
}

func TestNew_Locked(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "showtrack.db")

	store, err := New(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	_, err = New(ctx, path)
	assert.ErrorIs(t, err, storage.ErrStoreLocked)
}

func initSqlite(t *testing.T, ctx context.Context) *SQLite {
	return initSqliteWithFs(t, ctx, afero.NewMemMapFs())
}

func initSqliteWithFs(t *testing.T, ctx context.Context, fs afero.Fs) *SQLite {
	t.Helper()

	store, err := New(ctx, filepath.Join(t.TempDir(), "showtrack.db"), WithFs(fs))
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})

	return store
}
