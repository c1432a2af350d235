package sqlite

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite/schema/gen/table"
	"github.com/spf13/afero"
)

// UpsertEpisode stores an episode, replacing any episode with the same show and number
func (s *SQLite) UpsertEpisode(ctx context.Context, episode storage.Episode) error {
	// show ids are stored as int32
	if episode.ShowID < 1 || episode.ShowID > math.MaxInt32 {
		return fmt.Errorf("%w: show %d", storage.ErrNotFound, episode.ShowID)
	}

	row := model.Episodes{
		ShowID:    int32(episode.ShowID),
		Number:    episode.Number,
		Path:      episode.Path,
		ExtraInfo: storage.PackExtraInfo(episode.Recap, episode.Filler),
		Score:     episode.Score,
	}
	if episode.Title != "" {
		row.Title = &episode.Title
	}
	if episode.Aired != "" {
		row.Aired = &episode.Aired
	}

	stmt := table.Episodes.
		INSERT(table.Episodes.AllColumns).
		MODEL(row).
		ON_CONFLICT(table.Episodes.ShowID, table.Episodes.Number).
		DO_UPDATE(sqlite.SET(
			table.Episodes.Path.SET(table.Episodes.EXCLUDED.Path),
			table.Episodes.Title.SET(table.Episodes.EXCLUDED.Title),
			table.Episodes.ExtraInfo.SET(table.Episodes.EXCLUDED.ExtraInfo),
			table.Episodes.Score.SET(table.Episodes.EXCLUDED.Score),
			table.Episodes.Aired.SET(table.Episodes.EXCLUDED.Aired),
		))

	_, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to upsert episode: %w", err)
	}

	return nil
}

// CreateEpisodeByServiceID stores an episode for the show linked to serviceID.
// Nothing is written when no show has that service id.
func (s *SQLite) CreateEpisodeByServiceID(ctx context.Context, serviceID int32, number int32, path string, title string) error {
	// sqlite needs the WHERE on the select to parse the upsert clause that follows it
	query := sqlite.
		SELECT(
			table.Shows.ID,
			sqlite.Int32(number),
			sqlite.String(path),
			sqlite.String(title),
		).
		FROM(table.Shows).
		WHERE(table.Shows.ServiceID.EQ(sqlite.Int32(serviceID)))

	stmt := table.Episodes.
		INSERT(table.Episodes.ShowID, table.Episodes.Number, table.Episodes.Path, table.Episodes.Title).
		QUERY(query).
		ON_CONFLICT(table.Episodes.ShowID, table.Episodes.Number).
		DO_UPDATE(sqlite.SET(
			table.Episodes.Path.SET(table.Episodes.EXCLUDED.Path),
			table.Episodes.Title.SET(table.Episodes.EXCLUDED.Title),
		))

	_, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to create episode by service id: %w", err)
	}

	return nil
}

// MaxEpisodeNumber returns the highest stored episode number for a show, or 0 if it has none
func (s *SQLite) MaxEpisodeNumber(ctx context.Context, showID int64) (int32, error) {
	stmt := table.Episodes.
		SELECT(table.Episodes.ShowID, table.Episodes.Number).
		WHERE(table.Episodes.ShowID.EQ(sqlite.Int64(showID))).
		ORDER_BY(table.Episodes.Number.DESC()).
		LIMIT(1)

	var episode model.Episodes
	err := stmt.QueryContext(ctx, s.db, &episode)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get max episode number: %w", err)
	}

	return episode.Number, nil
}

func (s *SQLite) toEpisode(e model.Episodes) storage.Episode {
	recap, filler := storage.UnpackExtraInfo(e.ExtraInfo)
	episode := storage.Episode{
		ShowID: int64(e.ShowID),
		Number: e.Number,
		Path:   e.Path,
		Score:  e.Score,
		Recap:  recap,
		Filler: filler,
	}
	if e.Title != nil {
		episode.Title = *e.Title
	}
	if e.Aired != nil {
		episode.Aired = *e.Aired
	}

	exists, err := afero.Exists(s.fs, e.Path)
	episode.FileDeleted = err == nil && !exists

	return episode
}
