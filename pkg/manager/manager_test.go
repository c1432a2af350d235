package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/kasuboski/showtrack/pkg/library"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite"
	"github.com/kasuboski/showtrack/pkg/tracking"
	"github.com/kasuboski/showtrack/pkg/tracking/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testEnv struct {
	manager  MediaManager
	store    storage.Storage
	fs       afero.Fs
	tracking *mocks.MockService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	ctx := context.Background()
	fs := afero.NewMemMapFs()

	store, err := sqlite.New(ctx, ":memory:", sqlite.WithFs(fs))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	svc.EXPECT().Name().Return("mal").AnyTimes()

	return testEnv{
		manager:  New(svc, library.New(fs), store),
		store:    store,
		fs:       fs,
		tracking: svc,
	}
}

func (e testEnv) writeFiles(t *testing.T, files ...string) {
	t.Helper()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(e.fs, f, []byte("video"), 0o644))
	}
}

func TestMediaManager_CreateShow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.manager.CreateShow(ctx, "  ", 1, 0)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	id, err := env.manager.CreateShow(ctx, " Cowboy Bebop ", 1, 3)
	require.NoError(t, err)

	show, err := env.manager.GetShow(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cowboy Bebop", show.Title)
	assert.Empty(t, show.Episodes)
}

func TestMediaManager_FindServiceID(t *testing.T) {
	ctx := context.Background()

	t.Run("single case insensitive match", func(t *testing.T) {
		env := newTestEnv(t)
		env.tracking.EXPECT().SearchTitles(gomock.Any(), "cowboy bebop").Return([]tracking.SearchResult{
			{RemoteID: 1, Title: "Cowboy Bebop"},
			{RemoteID: 5, Title: "Cowboy Bebop: Tengoku no Tobira"},
		}, nil)

		id, ok, err := env.manager.FindServiceID(ctx, "cowboy bebop")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int32(1), id)
	})

	t.Run("ambiguous", func(t *testing.T) {
		env := newTestEnv(t)
		env.tracking.EXPECT().SearchTitles(gomock.Any(), "Hunter x Hunter").Return([]tracking.SearchResult{
			{RemoteID: 136, Title: "Hunter x Hunter"},
			{RemoteID: 11061, Title: "HUNTER X HUNTER"},
		}, nil)

		_, ok, err := env.manager.FindServiceID(ctx, "Hunter x Hunter")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("search failure", func(t *testing.T) {
		env := newTestEnv(t)
		wantErr := errors.New("offline")
		env.tracking.EXPECT().SearchTitles(gomock.Any(), "Monster").Return(nil, wantErr)

		_, _, err := env.manager.FindServiceID(ctx, "Monster")
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("empty query", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.manager.SearchTitles(ctx, " ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestMediaManager_Files(t *testing.T) {
	env := newTestEnv(t)
	env.writeFiles(t, "/tv/Show Name - 02 [Group].mkv", "/tv/Show Name - 01 [Group].mkv", "/tv/notes.txt")

	files, err := env.manager.ListVideoFiles("/tv")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/tv/Show Name - 01 [Group].mkv", files[0].Path)

	count, err := env.manager.CountVideoFiles("/tv")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	title, err := env.manager.GuessTitle("/tv")
	require.NoError(t, err)
	assert.Equal(t, "Show Name", title)
}
