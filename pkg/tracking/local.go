package tracking

import "context"

const LocalName = "local"

var _ Service = Local{}

// Local is a Service that tracks nothing remotely. It is always authenticated, never knows an
// episode count or progress, and accepts any progress it is given.
type Local struct{}

func (Local) Name() string {
	return LocalName
}

func (Local) IsAuthenticated(context.Context) bool {
	return true
}

func (Local) EpisodeCount(context.Context, int32) (int32, bool, error) {
	return 0, false, nil
}

func (Local) EpisodeMetadata(context.Context, int32) ([]EpisodeMetadata, error) {
	return nil, nil
}

func (Local) RemoteProgress(context.Context, int32) (int32, bool, error) {
	return 0, false, nil
}

func (Local) SetRemoteProgress(_ context.Context, _ int32, progress int32) (int32, error) {
	return progress, nil
}

func (Local) SearchTitles(context.Context, string) ([]SearchResult, error) {
	return []SearchResult{}, nil
}
