package library

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("video"), 0o644))
	}

	return fs
}

func TestListVideoFiles(t *testing.T) {
	t.Run("filters by extension and sorts", func(t *testing.T) {
		fs := newTestFS(t, "/tv/c.MP4", "/tv/b.txt", "/tv/a.mkv")
		l := New(fs)

		files, err := l.ListVideoFiles("/tv")
		require.NoError(t, err)
		assert.Equal(t, []string{"/tv/a.mkv", "/tv/c.MP4"}, files)
	})

	t.Run("single video file", func(t *testing.T) {
		fs := newTestFS(t, "/tv/a.mkv", "/tv/b.mkv")
		l := New(fs)

		files, err := l.ListVideoFiles("/tv/b.mkv")
		require.NoError(t, err)
		assert.Equal(t, []string{"/tv/b.mkv"}, files)
	})

	t.Run("does not recurse", func(t *testing.T) {
		fs := newTestFS(t, "/tv/01.mkv", "/tv/extras/nced.mkv")
		l := New(fs)

		files, err := l.ListVideoFiles("/tv")
		require.NoError(t, err)
		assert.Equal(t, []string{"/tv/01.mkv"}, files)
	})

	t.Run("extension match is a substring", func(t *testing.T) {
		fs := newTestFS(t, "/tv/01.ogv", "/tv/02.oggx", "/tv/03.srt", "/tv/04")
		l := New(fs)

		files, err := l.ListVideoFiles("/tv")
		require.NoError(t, err)
		assert.Equal(t, []string{"/tv/02.oggx"}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		l := New(afero.NewMemMapFs())

		_, err := l.ListVideoFiles("/nope")
		assert.ErrorIs(t, err, ErrUnreadable)
	})

	t.Run("sizes", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/tv/01.mkv", make([]byte, 2048), 0o644))
		l := New(fs)

		files, err := l.ListVideoFileInfo("/tv")
		require.NoError(t, err)
		assert.Equal(t, []VideoFile{{Path: "/tv/01.mkv", Size: 2048}}, files)
	})
}

func TestCountVideoFiles(t *testing.T) {
	fs := newTestFS(t, "/tv/01.mkv", "/tv/02.mkv", "/tv/02.ass")
	l := New(fs)

	count, err := l.CountVideoFiles("/tv")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGuessTitle(t *testing.T) {
	t.Run("first file wins", func(t *testing.T) {
		fs := newTestFS(t,
			"/tv/Show Name - 02 [Group].mkv",
			"/tv/Show Name - 01 [Group].mkv",
		)
		l := New(fs)

		title, err := l.GuessTitle("/tv")
		require.NoError(t, err)
		assert.Equal(t, "Show Name", title)
	})

	t.Run("no files", func(t *testing.T) {
		fs := newTestFS(t, "/tv/notes.txt")
		l := New(fs)

		title, err := l.GuessTitle("/tv")
		require.NoError(t, err)
		assert.Equal(t, "", title)
	})
}

func TestTitleFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Show Name - 01 [Group].mkv", "Show Name"},
		{"[Group] Show Name - 01 (1080p) [ABCD1234].mkv", "Show Name"},
		{"Show Name.mkv", "Show Name"},
		{"Spider-Man - 03.mkv", "Spider-Man"},
		{"[Group] Show [Name (Nested]) Title.mkv", "Show  Title"},
		{"Stray ] Bracket - 01.mkv", "Stray  Bracket"},
		{"/media/tv/Show Name - 12v2 [Group].mkv", "Show Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromFilename(tt.name))
		})
	}
}

func TestWithRoot(t *testing.T) {
	fs := newTestFS(t, "/media/anime/Mushishi/01.mkv")
	l := New(fs, WithRoot("/media/anime"))

	files, err := l.ListVideoFiles("Mushishi")
	require.NoError(t, err)
	assert.Equal(t, []string{"/media/anime/Mushishi/01.mkv"}, files)

	assert.Equal(t, "/elsewhere", l.Resolve("/elsewhere"))
}
