package tracking

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when the tracking service has no usable credentials
	ErrNotAuthenticated = errors.New("not authenticated with tracking service")
)

// Service is a remote system of record for watch progress and episode metadata.
// ids are the remote service's identifiers, never local show ids.
type Service interface {
	Name() string
	IsAuthenticated(ctx context.Context) bool
	// EpisodeCount returns false when the service does not know how many episodes the show has
	EpisodeCount(ctx context.Context, id int32) (int32, bool, error)
	EpisodeMetadata(ctx context.Context, id int32) ([]EpisodeMetadata, error)
	// RemoteProgress returns false when the show is not on the user's list
	RemoteProgress(ctx context.Context, id int32) (int32, bool, error)
	// SetRemoteProgress returns the progress the service accepted, which may differ from the request
	SetRemoteProgress(ctx context.Context, id int32, progress int32) (int32, error)
	SearchTitles(ctx context.Context, text string) ([]SearchResult, error)
}

type EpisodeMetadata struct {
	Number int32    `json:"number"`
	Title  string   `json:"title"`
	Recap  bool     `json:"recap"`
	Filler bool     `json:"filler"`
	Score  *float64 `json:"score,omitempty"`
	Aired  string   `json:"aired,omitempty"`
}

type SearchResult struct {
	RemoteID int32  `json:"remoteId"`
	Title    string `json:"title"`
}

// RemoteError describes a failed call to a tracking service
type RemoteError struct {
	Service    string
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// MetadataByNumber indexes metadata by episode number. Later entries win on duplicate numbers.
func MetadataByNumber(metadata []EpisodeMetadata) map[int32]EpisodeMetadata {
	m := make(map[int32]EpisodeMetadata, len(metadata))
	for _, md := range metadata {
		m[md.Number] = md
	}
	return m
}
