package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kasuboski/showtrack/pkg/library"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/tracking"
	"golang.org/x/text/cases"
)

var (
	ErrEmptyTitle = errors.New("title is empty")
	ErrEmptyQuery = errors.New("query is empty")
)

// MediaManager ties the catalog to the filesystem and the tracking service
type MediaManager struct {
	tracking tracking.Service
	library  library.Library
	storage  storage.Storage
}

func New(trackingService tracking.Service, library library.Library, storage storage.Storage) MediaManager {
	return MediaManager{
		tracking: trackingService,
		library:  library,
		storage:  storage,
	}
}

// TrackingName is the name of the configured tracking service
func (m MediaManager) TrackingName() string {
	return m.tracking.Name()
}

func (m MediaManager) ListShows(ctx context.Context, sort storage.SortKey) ([]*storage.Show, error) {
	return m.storage.ListShows(ctx, sort)
}

func (m MediaManager) GetShow(ctx context.Context, id int64) (*storage.Show, error) {
	return m.storage.GetShow(ctx, id)
}

// CreateShow adds a show with no episodes
func (m MediaManager) CreateShow(ctx context.Context, title string, serviceID int32, progress int32) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, ErrEmptyTitle
	}

	return m.storage.CreateShow(ctx, title, serviceID, progress)
}

func (m MediaManager) SetProgress(ctx context.Context, id int64, progress int32) error {
	return m.storage.UpdateShowProgress(ctx, id, progress)
}

func (m MediaManager) DeleteShow(ctx context.Context, id int64) error {
	return m.storage.DeleteShow(ctx, id)
}

func (m MediaManager) UpsertEpisode(ctx context.Context, episode storage.Episode) error {
	return m.storage.UpsertEpisode(ctx, episode)
}

func (m MediaManager) ListVideoFiles(path string) ([]library.VideoFile, error) {
	return m.library.ListVideoFileInfo(path)
}

func (m MediaManager) GuessTitle(path string) (string, error) {
	return m.library.GuessTitle(path)
}

func (m MediaManager) CountVideoFiles(path string) (int, error) {
	return m.library.CountVideoFiles(path)
}

// SearchTitles asks the tracking service for shows matching text
func (m MediaManager) SearchTitles(ctx context.Context, text string) ([]tracking.SearchResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	return m.tracking.SearchTitles(ctx, text)
}

// FindServiceID searches the tracking service for title and returns the remote id of the single result whose
// title matches it ignoring case. It returns false when there is no match or the match is ambiguous.
func (m MediaManager) FindServiceID(ctx context.Context, title string) (int32, bool, error) {
	log := logger.FromCtx(ctx)

	results, err := m.SearchTitles(ctx, title)
	if err != nil {
		return 0, false, fmt.Errorf("failed to search for %q: %w", title, err)
	}

	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(title))

	var matches []tracking.SearchResult
	for _, r := range results {
		if fold.String(strings.TrimSpace(r.Title)) == want {
			matches = append(matches, r)
		}
	}

	if len(matches) != 1 {
		log.Debugw("no unique title match", "title", title, "results", len(results), "matches", len(matches))
		return 0, false, nil
	}

	return matches[0].RemoteID, true, nil
}
