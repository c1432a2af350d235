package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite/schema/gen/table"
)

// showRow is the grouped result of joining shows to their episodes
type showRow struct {
	model.Shows

	Episodes []model.Episodes
}

// ListShows lists all shows with their episodes in the requested order
func (s *SQLite) ListShows(ctx context.Context, sort storage.SortKey) ([]*storage.Show, error) {
	orderBy, err := orderByClause(sort)
	if err != nil {
		return nil, err
	}

	stmt := selectShowsWithEpisodes().
		ORDER_BY(orderBy, table.Shows.ID.ASC(), table.Episodes.Number.ASC())

	var rows []showRow
	err = stmt.QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	shows := make([]*storage.Show, 0, len(rows))
	for _, r := range rows {
		shows = append(shows, s.toShow(r))
	}

	return shows, nil
}

// GetShow gets a show and its episodes by id
func (s *SQLite) GetShow(ctx context.Context, id int64) (*storage.Show, error) {
	stmt := selectShowsWithEpisodes().
		WHERE(table.Shows.ID.EQ(sqlite.Int64(id))).
		ORDER_BY(table.Episodes.Number.ASC())

	var row showRow
	err := stmt.QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	return s.toShow(row), nil
}

// GetShowIDByTitle finds the local id of the show with the exact title
func (s *SQLite) GetShowIDByTitle(ctx context.Context, title string) (int64, error) {
	stmt := table.Shows.
		SELECT(table.Shows.ID).
		WHERE(table.Shows.Title.EQ(sqlite.String(title)))

	var show model.Shows
	err := stmt.QueryContext(ctx, s.db, &show)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get show by title: %w", err)
	}

	return int64(show.ID), nil
}

// CreateShow stores a new show. A serviceID of 0 leaves the show unlinked.
func (s *SQLite) CreateShow(ctx context.Context, title string, serviceID int32, progress int32) (int64, error) {
	if progress < 0 {
		return 0, storage.ErrNegativeProgress
	}

	show := model.Shows{
		Title:    title,
		Progress: progress,
	}
	if serviceID != 0 {
		show.ServiceID = &serviceID
	}

	stmt := table.Shows.
		INSERT(table.Shows.MutableColumns).
		MODEL(show)

	result, err := s.handleInsert(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to create show: %w", err)
	}

	return result.LastInsertId()
}

// UpdateShowProgress overwrites the progress of a show
func (s *SQLite) UpdateShowProgress(ctx context.Context, id int64, progress int32) error {
	if progress < 0 {
		return storage.ErrNegativeProgress
	}

	stmt := table.Shows.
		UPDATE().
		SET(table.Shows.Progress.SET(sqlite.Int32(progress))).
		WHERE(table.Shows.ID.EQ(sqlite.Int64(id)))

	result, err := s.handleStatement(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to update show progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// DeleteShow removes a show and its episodes. Deleting a missing show is not an error.
func (s *SQLite) DeleteShow(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = table.Episodes.
		DELETE().
		WHERE(table.Episodes.ShowID.EQ(sqlite.Int64(id))).
		ExecContext(ctx, tx)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete show episodes: %w", err)
	}

	_, err = table.Shows.
		DELETE().
		WHERE(table.Shows.ID.EQ(sqlite.Int64(id))).
		ExecContext(ctx, tx)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete show: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func selectShowsWithEpisodes() sqlite.SelectStatement {
	return sqlite.SELECT(
		table.Shows.AllColumns,
		table.Episodes.AllColumns,
	).FROM(
		table.Shows.LEFT_JOIN(table.Episodes, table.Episodes.ShowID.EQ(table.Shows.ID)),
	)
}

func orderByClause(sort storage.SortKey) (sqlite.OrderByClause, error) {
	switch sort {
	case storage.SortByIDAsc, "":
		return table.Shows.ID.ASC(), nil
	case storage.SortByIDDesc:
		return table.Shows.ID.DESC(), nil
	case storage.SortByTitleAsc:
		return table.Shows.Title.ASC(), nil
	case storage.SortByTitleDesc:
		return table.Shows.Title.DESC(), nil
	case storage.SortByServiceIDAsc:
		return table.Shows.ServiceID.ASC(), nil
	case storage.SortByServiceIDDesc:
		return table.Shows.ServiceID.DESC(), nil
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidSortKey, sort)
	}
}

func (s *SQLite) toShow(r showRow) *storage.Show {
	show := &storage.Show{
		ID:       int64(r.ID),
		Title:    r.Title,
		Progress: r.Progress,
		Episodes: make([]storage.Episode, 0, len(r.Episodes)),
	}
	if r.ServiceID != nil {
		show.ServiceID = *r.ServiceID
	}

	for _, e := range r.Episodes {
		show.Episodes = append(show.Episodes, s.toEpisode(e))
	}

	return show
}
