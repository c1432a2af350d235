package sqlite

import (
	"context"
	"math"
	"testing"

	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertEpisode(t *testing.T) {
	t.Run("second upsert replaces the first", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		id, err := store.CreateShow(ctx, "Haibane Renmei", 387, 0)
		require.NoError(t, err)

		err = store.UpsertEpisode(ctx, storage.Episode{ShowID: id, Number: 3, Path: "/tv/old.mkv", Title: "Old"})
		require.NoError(t, err)
		err = store.UpsertEpisode(ctx, storage.Episode{ShowID: id, Number: 3, Path: "/tv/new.mkv", Title: "New", Filler: true})
		require.NoError(t, err)

		show, err := store.GetShow(ctx, id)
		require.NoError(t, err)
		require.Len(t, show.Episodes, 1)
		assert.Equal(t, int32(3), show.Episodes[0].Number)
		assert.Equal(t, "/tv/new.mkv", show.Episodes[0].Path)
		assert.Equal(t, "New", show.Episodes[0].Title)
		assert.True(t, show.Episodes[0].Filler)
		assert.False(t, show.Episodes[0].Recap)
	})

	t.Run("episodes are listed by number", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		id, err := store.CreateShow(ctx, "Haibane Renmei", 387, 0)
		require.NoError(t, err)

		for _, n := range []int32{9, 2, 5} {
			err = store.UpsertEpisode(ctx, storage.Episode{ShowID: id, Number: n, Path: "/tv/ep.mkv"})
			require.NoError(t, err)
		}

		shows, err := store.ListShows(ctx, storage.SortByTitleDesc)
		require.NoError(t, err)
		require.Len(t, shows, 1)

		var numbers []int32
		for _, e := range shows[0].Episodes {
			numbers = append(numbers, e.Number)
		}
		assert.Equal(t, []int32{2, 5, 9}, numbers)

		max, err := store.MaxEpisodeNumber(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int32(9), max)
	})

	t.Run("metadata round trips", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		id, err := store.CreateShow(ctx, "Naruto", 20, 0)
		require.NoError(t, err)

		score := 4.25
		err = store.UpsertEpisode(ctx, storage.Episode{
			ShowID: id,
			Number: 26,
			Path:   "/tv/naruto-26.mkv",
			Title:  "Special Report",
			Aired:  "2003-04-02",
			Score:  &score,
			Recap:  true,
			Filler: true,
		})
		require.NoError(t, err)

		show, err := store.GetShow(ctx, id)
		require.NoError(t, err)
		require.Len(t, show.Episodes, 1)

		e := show.Episodes[0]
		assert.True(t, e.Recap)
		assert.True(t, e.Filler)
		assert.Equal(t, "2003-04-02", e.Aired)
		require.NotNil(t, e.Score)
		assert.InDelta(t, 4.25, *e.Score, 0.0001)
	})

	t.Run("unknown show", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		err := store.UpsertEpisode(ctx, storage.Episode{ShowID: 7, Number: 1, Path: "/tv/ep.mkv"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("show id beyond the stored range", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		_, err := store.CreateShow(ctx, "Haibane Renmei", 387, 0)
		require.NoError(t, err)

		err = store.UpsertEpisode(ctx, storage.Episode{ShowID: math.MaxInt32 + 2, Number: 1, Path: "/tv/ep.mkv"})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		shows, err := store.ListShows(ctx, storage.SortByIDAsc)
		require.NoError(t, err)
		require.Len(t, shows, 1)
		assert.Empty(t, shows[0].Episodes)
	})

	t.Run("file deleted is derived on read", func(t *testing.T) {
		ctx := context.Background()
		fs := afero.NewMemMapFs()
		store := initSqliteWithFs(t, ctx, fs)

		require.NoError(t, afero.WriteFile(fs, "/tv/present.mkv", []byte("x"), 0o644))

		id, err := store.CreateShow(ctx, "Planetes", 329, 0)
		require.NoError(t, err)
		require.NoError(t, store.UpsertEpisode(ctx, storage.Episode{ShowID: id, Number: 1, Path: "/tv/present.mkv"}))
		require.NoError(t, store.UpsertEpisode(ctx, storage.Episode{ShowID: id, Number: 2, Path: "/tv/gone.mkv"}))

		show, err := store.GetShow(ctx, id)
		require.NoError(t, err)
		require.Len(t, show.Episodes, 2)
		assert.False(t, show.Episodes[0].FileDeleted)
		assert.True(t, show.Episodes[1].FileDeleted)
	})
}

func TestCreateEpisodeByServiceID(t *testing.T) {
	t.Run("resolves the service id", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		id, err := store.CreateShow(ctx, "Mob Psycho 100", 32182, 0)
		require.NoError(t, err)

		err = store.CreateEpisodeByServiceID(ctx, 32182, 4, "/tv/mob-04.mkv", "Idiots Only Event")
		require.NoError(t, err)

		show, err := store.GetShow(ctx, id)
		require.NoError(t, err)
		require.Len(t, show.Episodes, 1)
		assert.Equal(t, int32(4), show.Episodes[0].Number)
		assert.Equal(t, "/tv/mob-04.mkv", show.Episodes[0].Path)
		assert.Equal(t, "Idiots Only Event", show.Episodes[0].Title)
	})

	t.Run("unknown service id writes nothing", func(t *testing.T) {
		ctx := context.Background()
		store := initSqlite(t, ctx)

		_, err := store.CreateShow(ctx, "Mob Psycho 100", 32182, 0)
		require.NoError(t, err)

		err = store.CreateEpisodeByServiceID(ctx, 1, 1, "/tv/ep.mkv", "")
		require.NoError(t, err)

		shows, err := store.ListShows(ctx, storage.SortByIDAsc)
		require.NoError(t, err)
		require.Len(t, shows, 1)
		assert.Empty(t, shows[0].Episodes)
	})
}

func TestExtraInfoBits(t *testing.T) {
	tests := []struct {
		recap, filler bool
		want          int32
	}{
		{false, false, 0},
		{true, false, 1},
		{false, true, 2},
		{true, true, 3},
	}

	for _, tt := range tests {
		bits := storage.PackExtraInfo(tt.recap, tt.filler)
		assert.Equal(t, tt.want, bits)

		recap, filler := storage.UnpackExtraInfo(bits)
		assert.Equal(t, tt.recap, recap)
		assert.Equal(t, tt.filler, filler)
	}
}
