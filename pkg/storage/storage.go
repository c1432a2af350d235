package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found in storage")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStoreLocked         = errors.New("store is in use by another process")
	ErrInvalidSortKey      = errors.New("invalid sort key")
	ErrNegativeProgress    = errors.New("progress must not be negative")
)

// Storage is the durable catalog of shows and their episodes
type Storage interface {
	RunMigrations(ctx context.Context) error
	Close() error
	ShowStorage
	EpisodeStorage
}

type ShowStorage interface {
	ListShows(ctx context.Context, sort SortKey) ([]*Show, error)
	GetShow(ctx context.Context, id int64) (*Show, error)
	GetShowIDByTitle(ctx context.Context, title string) (int64, error)
	CreateShow(ctx context.Context, title string, serviceID int32, progress int32) (int64, error)
	UpdateShowProgress(ctx context.Context, id int64, progress int32) error
	DeleteShow(ctx context.Context, id int64) error
}

type EpisodeStorage interface {
	UpsertEpisode(ctx context.Context, episode Episode) error
	CreateEpisodeByServiceID(ctx context.Context, serviceID int32, number int32, path string, title string) error
	MaxEpisodeNumber(ctx context.Context, showID int64) (int32, error)
}

// Show is a tracked series with its episodes ordered by number
type Show struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ServiceID int32     `json:"serviceId"`
	Progress  int32     `json:"progress"`
	Episodes  []Episode `json:"episodes"`
}

// Linked reports whether the show is known to a remote tracking service
func (s Show) Linked() bool {
	return s.ServiceID != 0
}

type Episode struct {
	ShowID int64    `json:"showId"`
	Number int32    `json:"number"`
	Path   string   `json:"path"`
	Title  string   `json:"title"`
	Aired  string   `json:"aired,omitempty"`
	Score  *float64 `json:"score,omitempty"`
	Recap  bool     `json:"recap"`
	Filler bool     `json:"filler"`

	// FileDeleted is computed when the episode is read and never stored
	FileDeleted bool `json:"fileDeleted"`
}

const (
	extraInfoRecap  int32 = 1 << 0
	extraInfoFiller int32 = 1 << 1
)

// PackExtraInfo packs the episode flags into the stored bitfield
func PackExtraInfo(recap, filler bool) int32 {
	var bits int32
	if recap {
		bits |= extraInfoRecap
	}
	if filler {
		bits |= extraInfoFiller
	}
	return bits
}

// UnpackExtraInfo returns the recap and filler flags held in bits
func UnpackExtraInfo(bits int32) (recap bool, filler bool) {
	return bits&extraInfoRecap != 0, bits&extraInfoFiller != 0
}

// SortKey selects the order shows are listed in
type SortKey string

const (
	SortByIDAsc         SortKey = "id"
	SortByIDDesc        SortKey = "-id"
	SortByTitleAsc      SortKey = "title"
	SortByTitleDesc     SortKey = "-title"
	SortByServiceIDAsc  SortKey = "service"
	SortByServiceIDDesc SortKey = "-service"
)

var sortKeys = []SortKey{
	SortByIDAsc,
	SortByIDDesc,
	SortByTitleAsc,
	SortByTitleDesc,
	SortByServiceIDAsc,
	SortByServiceIDDesc,
}

// ParseSortKey converts s into a SortKey. An empty string sorts by id.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByIDAsc, nil
	}

	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}
