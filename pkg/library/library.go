package library

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

var _ Library = (*MediaLibrary)(nil)

// MediaLibrary finds video files through an afero filesystem
type MediaLibrary struct {
	fs   afero.Fs
	root string
}

type Option func(*MediaLibrary)

// WithRoot resolves relative paths against root
func WithRoot(root string) Option {
	return func(l *MediaLibrary) {
		l.root = root
	}
}

// New creates a MediaLibrary backed by fs. A nil fs uses the operating system.
func New(fs afero.Fs, opts ...Option) *MediaLibrary {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	l := &MediaLibrary{
		fs: fs,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Resolve returns path joined to the library root when path is relative
func (l *MediaLibrary) Resolve(path string) string {
	if l.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.root, path)
}

// ListVideoFiles returns the video files at path in lexical order.
// A path naming a video file returns just that file; a directory is listed without recursing.
func (l *MediaLibrary) ListVideoFiles(path string) ([]string, error) {
	files, err := l.ListVideoFileInfo(path)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	return paths, nil
}

// ListVideoFileInfo is ListVideoFiles with the size of each file
func (l *MediaLibrary) ListVideoFileInfo(path string) ([]VideoFile, error) {
	path = l.Resolve(path)

	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	if !info.IsDir() && isVideoFile(path) {
		return []VideoFile{{Path: path, Size: info.Size()}}, nil
	}

	entries, err := afero.ReadDir(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	files := []VideoFile{}
	for _, e := range entries {
		if e.IsDir() || !isVideoFile(e.Name()) {
			continue
		}

		files = append(files, VideoFile{
			Path: filepath.Join(path, e.Name()),
			Size: e.Size(),
		})
	}

	slices.SortFunc(files, func(a, b VideoFile) int {
		return strings.Compare(a.Path, b.Path)
	})

	return files, nil
}

// CountVideoFiles counts the video files ListVideoFiles would return
func (l *MediaLibrary) CountVideoFiles(path string) (int, error) {
	files, err := l.ListVideoFiles(path)
	if err != nil {
		return 0, err
	}

	return len(files), nil
}

// GuessTitle derives a show title from the first video file at path.
// It returns an empty string when there are no video files.
func (l *MediaLibrary) GuessTitle(path string) (string, error) {
	files, err := l.ListVideoFiles(path)
	if err != nil {
		return "", err
	}

	if len(files) == 0 {
		return "", nil
	}

	return TitleFromFilename(files[0]), nil
}

// TitleFromFilename cleans a "Show Name - 01 [Group].mkv" style filename down to "Show Name"
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	title := strings.TrimSpace(stripBracketed(name))
	if i := strings.LastIndex(title, "-"); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}

	return title
}

// stripBracketed drops everything enclosed in [] or (). Each bracket kind keeps its own depth and a
// stray closing bracket never drives the depth below zero.
func stripBracketed(s string) string {
	var b strings.Builder
	square, paren := 0, 0

	for _, r := range s {
		switch r {
		case '[':
			square++
		case ']':
			square = max(square-1, 0)
		case '(':
			paren++
		case ')':
			paren = max(paren-1, 0)
		default:
			if square == 0 && paren == 0 {
				b.WriteRune(r)
			}
		}
	}

	return b.String()
}

func isVideoFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}

	for _, e := range videoExtensions {
		if strings.Contains(ext, e) {
			return true
		}
	}

	return false
}
